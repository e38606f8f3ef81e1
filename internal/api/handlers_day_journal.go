package api

import (
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/tradejournal/tradejournal-server/internal/api/respond"
	"github.com/tradejournal/tradejournal-server/internal/api/validate"
	"github.com/tradejournal/tradejournal-server/internal/config"
	"github.com/tradejournal/tradejournal-server/internal/model"
	"github.com/tradejournal/tradejournal-server/internal/services"
)

const dayJournalNotFound = "Day journal not found"

type DayJournalHandler struct {
	svc *services.DayJournalService
	cfg *config.Config
}

func NewDayJournalHandler(svc *services.DayJournalService, cfg *config.Config) *DayJournalHandler {
	return &DayJournalHandler{svc: svc, cfg: cfg}
}

// List GET /day-journal
func (h *DayJournalHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := page(r, h.cfg)
	if err != nil {
		writeErr(w, h.cfg, err, dayJournalNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusOK, h.svc.ListAll(r.Context(), skip, limit, owner(r)))
}

// Range GET /day-journal/range?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *DayJournalHandler) Range(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "start_date")
	if err != nil {
		writeErr(w, h.cfg, err, dayJournalNotFound)
		return
	}
	end, err := queryDate(r, "end_date")
	if err != nil {
		writeErr(w, h.cfg, err, dayJournalNotFound)
		return
	}
	out, err := h.svc.ListByDateRange(r.Context(), start, end, owner(r))
	if err != nil {
		writeErr(w, h.cfg, err, dayJournalNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func queryDate(r *http.Request, name string) (model.Date, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return model.Date{}, model.NewValidationError(name, name+" is required")
	}
	d, err := model.ParseDate(v)
	if err != nil {
		return model.Date{}, model.NewValidationError(name, name+" must be in YYYY-MM-DD format")
	}
	return d, nil
}

// Get GET /day-journal/{id}
func (h *DayJournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	dj, err := h.svc.GetByID(r.Context(), mux.Vars(r)["id"], owner(r))
	if err != nil {
		writeErr(w, h.cfg, err, dayJournalNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusOK, dj)
}

// Create POST /day-journal
func (h *DayJournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.DayJournalInput
	if err := decodeBody(r, &in); err != nil {
		writeErr(w, h.cfg, err, dayJournalNotFound)
		return
	}
	if err := validate.CreateDayJournal(in); err != nil {
		writeErr(w, h.cfg, err, dayJournalNotFound)
		return
	}
	out, err := h.svc.Create(r.Context(), in, owner(r))
	if err != nil {
		writeErr(w, h.cfg, err, dayJournalNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// Update PUT /day-journal/{id}
func (h *DayJournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var u model.DayJournalUpdate
	if err := decodeBody(r, &u); err != nil {
		writeErr(w, h.cfg, err, dayJournalNotFound)
		return
	}
	if err := validate.UpdateDayJournal(u); err != nil {
		writeErr(w, h.cfg, err, dayJournalNotFound)
		return
	}
	out, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], u, owner(r))
	if err != nil {
		writeErr(w, h.cfg, err, dayJournalNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// Delete DELETE /day-journal/{id}
func (h *DayJournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	dj, err := h.svc.Delete(r.Context(), mux.Vars(r)["id"], owner(r))
	if err != nil {
		writeErr(w, h.cfg, err, dayJournalNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":             "Day journal deleted successfully",
		"deleted_day_journal": dj,
	})
}
