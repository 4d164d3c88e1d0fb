package core

// Categories indexes categories by id.
type Categories map[string]Category

// IndexCategories builds a lookup from a category list. Later duplicates
// of an id win.
func IndexCategories(list []Category) Categories {
	out := make(Categories, len(list))
	for _, c := range list {
		out[c.ID] = c
	}
	return out
}

// Name resolves a category display name, or fallback for dangling ids.
func (c Categories) Name(id, fallback string) string {
	if cat, ok := c[id]; ok {
		return cat.Name
	}
	return fallback
}
