package http

import (
	"net/http"

	"finboard/internal/core"
	"finboard/internal/datekey"
	applog "finboard/internal/log"
	"finboard/internal/report"
	"finboard/internal/services"
)

func (s *Server) handleListCategoryTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.repos.CategoryTypes.Snapshot(r.Context())
	if err != nil {
		fail(w, r, "Failed to list category types", err)
		return
	}
	_ = NewJSONResponse().Data(orEmpty(types)).Write(w)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.repos.Categories.Snapshot(r.Context())
	if err != nil {
		fail(w, r, "Failed to list categories", err)
		return
	}
	_ = NewJSONResponse().Data(orEmpty(cats)).Write(w)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := DecodeJSON(r, &req); err != nil {
		_ = BadRequestError(err.Error()).Write(w)
		return
	}

	c, err := s.ledger.AddCategory(r.Context(), services.NewCategory{
		Name:   sanitizeInput(req.Name),
		Alias:  sanitizeInput(req.Alias),
		TypeID: sanitizeInput(req.TypeID),
	})
	if err != nil {
		fail(w, r, "Failed to create category", err)
		return
	}
	s.changed(r, applog.OpCreate, "category", c.ID)
	_ = Created(c).Write(w)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.ledger.DeleteCategory(r.Context(), id); err != nil {
		fail(w, r, "Failed to delete category", err)
		return
	}
	s.changed(r, applog.OpDelete, "category", id)
	_ = NoContent().Write(w)
}

// handleListTransactions lists transactions newest first. Optional start
// and end narrow the list to a range.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.repos.Transactions.Snapshot(r.Context())
	if err != nil {
		fail(w, r, "Failed to list transactions", err)
		return
	}

	q := r.URL.Query()
	if q.Get("start") != "" || q.Get("end") != "" {
		rng := datekey.ParseRange(sanitizeInput(q.Get("start")), sanitizeInput(q.Get("end")))
		if !rng.Valid() {
			_ = BadRequestError("invalid range").Write(w)
			return
		}
		txs = report.FilterRange(txs, rng)
	}
	_ = NewJSONResponse().Data(orEmpty(report.SortTransactions(txs))).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := DecodeJSON(r, &req); err != nil {
		_ = BadRequestError(err.Error()).Write(w)
		return
	}

	method := core.PaymentMethod(sanitizeInput(req.PaymentMethod))
	if method == "" {
		method = core.Debit
	}
	t, err := s.ledger.AddTransaction(r.Context(), services.NewTransaction{
		CategoryID:          sanitizeInput(req.CategoryID),
		Amount:              float64(req.Amount),
		Date:                sanitizeInput(req.Date),
		Description:         sanitizeInput(req.Description),
		PaymentMethod:       method,
		IsRecurringInstance: req.IsRecurringInstance,
	})
	if err != nil {
		fail(w, r, "Failed to create transaction", err)
		return
	}
	s.changed(r, applog.OpCreate, "transaction", t.ID)
	_ = Created(t).Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.ledger.DeleteTransaction(r.Context(), id); err != nil {
		fail(w, r, "Failed to delete transaction", err)
		return
	}
	s.changed(r, applog.OpDelete, "transaction", id)
	_ = NoContent().Write(w)
}
