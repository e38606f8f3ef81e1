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

// TagHandler serves emotions and confirmations, which share one shape.
type TagHandler struct {
	svc *services.TagService
	cfg *config.Config
	// label is the display name used in messages, e.g. "Emotion".
	label string
	// key names the deleted record in delete responses, e.g. "deleted_emotion".
	key string
}

func NewEmotionHandler(svc *services.TagService, cfg *config.Config) *TagHandler {
	return &TagHandler{svc: svc, cfg: cfg, label: "Emotion", key: "deleted_emotion"}
}

func NewConfirmationHandler(svc *services.TagService, cfg *config.Config) *TagHandler {
	return &TagHandler{svc: svc, cfg: cfg, label: "Confirmation", key: "deleted_confirmation"}
}

func (h *TagHandler) notFound() string { return h.label + " not found" }

// List GET /emotions, /confirmations
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := page(r, h.cfg)
	if err != nil {
		writeErr(w, h.cfg, err, h.notFound())
		return
	}
	respond.WriteJSON(w, http.StatusOK, h.svc.ListAll(r.Context(), skip, limit, owner(r)))
}

func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	tag, err := h.svc.GetByID(r.Context(), mux.Vars(r)["id"], owner(r))
	if err != nil {
		writeErr(w, h.cfg, err, h.notFound())
		return
	}
	respond.WriteJSON(w, http.StatusOK, tag)
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.TagInput
	if err := decodeBody(r, &in); err != nil {
		writeErr(w, h.cfg, err, h.notFound())
		return
	}
	if err := validate.CreateTag(in); err != nil {
		writeErr(w, h.cfg, err, h.notFound())
		return
	}
	out, err := h.svc.Create(r.Context(), in, owner(r))
	if err != nil {
		writeErr(w, h.cfg, err, h.notFound())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	var u model.TagUpdate
	if err := decodeBody(r, &u); err != nil {
		writeErr(w, h.cfg, err, h.notFound())
		return
	}
	if err := validate.UpdateTag(u); err != nil {
		writeErr(w, h.cfg, err, h.notFound())
		return
	}
	out, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], u, owner(r))
	if err != nil {
		writeErr(w, h.cfg, err, h.notFound())
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tag, err := h.svc.Delete(r.Context(), mux.Vars(r)["id"], owner(r))
	if err != nil {
		writeErr(w, h.cfg, err, h.notFound())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": h.label + " deleted successfully",
		h.key:     tag,
	})
}
