package http

import (
	"errors"
	"net/http"

	"finboard/internal/core"
	"finboard/internal/datekey"
	applog "finboard/internal/log"
	"finboard/internal/ports"
	"finboard/internal/recurrence"
	"finboard/internal/services"
)

// OccurrencesResponse lists a bill's projected due dates in a range.
type OccurrencesResponse struct {
	BillID      string                  `json:"billId"`
	Range       datekey.Range           `json:"range"`
	Occurrences []recurrence.Occurrence `json:"occurrences"`
	Total       float64                 `json:"total"`
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.repos.Bills.Snapshot(r.Context())
	if err != nil {
		fail(w, r, "Failed to list bills", err)
		return
	}
	_ = NewJSONResponse().Data(orEmpty(sortBillsByName(bills))).Write(w)
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req createBillRequest
	if err := DecodeJSON(r, &req); err != nil {
		_ = BadRequestError(err.Error()).Write(w)
		return
	}

	// New bills are active unless the caller says otherwise; next due
	// defaults to the start date.
	active := req.Active == nil || *req.Active
	next := sanitizeInput(req.NextDueDate)
	if next == "" {
		next = sanitizeInput(req.StartDate)
	}
	b, err := s.ledger.AddBill(r.Context(), services.NewBill{
		Name:        sanitizeInput(req.Name),
		CategoryID:  sanitizeInput(req.CategoryID),
		Amount:      float64(req.Amount),
		Frequency:   core.Frequency(sanitizeInput(req.Frequency)),
		StartDate:   sanitizeInput(req.StartDate),
		NextDueDate: next,
		Active:      active,
	})
	if err != nil {
		fail(w, r, "Failed to create bill", err)
		return
	}
	s.changed(r, applog.OpCreate, "bill", b.ID)
	_ = Created(b).Write(w)
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	var req updateBillRequest
	if err := DecodeJSON(r, &req); err != nil {
		_ = BadRequestError(err.Error()).Write(w)
		return
	}
	if req.Active == nil {
		_ = BadRequestError("active is required").Write(w)
		return
	}

	id := r.PathValue("id")
	b, err := s.ledger.SetBillActive(r.Context(), id, *req.Active)
	if err != nil {
		fail(w, r, "Failed to update bill", err)
		return
	}
	s.changed(r, applog.OpUpdate, "bill", id)
	_ = NewJSONResponse().Data(b).Write(w)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.ledger.DeleteBill(r.Context(), id); err != nil {
		fail(w, r, "Failed to delete bill", err)
		return
	}
	s.changed(r, applog.OpDelete, "bill", id)
	_ = NoContent().Write(w)
}

func (s *Server) handleBillOccurrences(w http.ResponseWriter, r *http.Request) {
	rng, err := ParseRange(r.URL.Query(), s.today())
	if err != nil {
		_ = BadRequestError(err.Error()).Write(w)
		return
	}

	id := r.PathValue("id")
	bill, err := s.repos.Bills.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			fail(w, r, "Failed to load bill", err)
			return
		}
		_ = NotFoundError("bill not found").Write(w)
		return
	}

	occs := recurrence.Project(bill, rng)
	_ = NewJSONResponse().Data(OccurrencesResponse{
		BillID:      bill.ID,
		Range:       rng,
		Occurrences: orEmpty(occs),
		Total:       recurrence.Total(occs),
	}).Write(w)
}
