package api

import (
	"net/http"

	"github.com/rs/zerolog"

	respond "github.com/tradejournal/tradejournal-server/internal/api/respond"
	"github.com/tradejournal/tradejournal-server/internal/services"
)

type ExportHandler struct {
	svc *services.ExportService
	log zerolog.Logger
}

func NewExportHandler(svc *services.ExportService, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, log: log}
}

// ExportAll GET /export/all
func (h *ExportHandler) ExportAll(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Export(r.Context(), owner(r))
	if err != nil {
		h.log.Error().Stack().Err(err).Msg("export failed")
		respond.WriteInternalError(w, "failed to export data")
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
