// Package services holds the use cases behind the HTTP API. Services are
// built once at startup and shared by every request.
package services

import (
	"github.com/rs/zerolog"

	"github.com/tradejournal/tradejournal-server/internal/store"
)

// Services bundles every domain service over one store.
type Services struct {
	Trades        *TradeService
	Emotions      *TagService
	Confirmations *TagService
	DayJournals   *DayJournalService
	Export        *ExportService
}

// New wires the services. batch bounds each page of full scans.
func New(s store.Store, batch int, log zerolog.Logger) *Services {
	trades := NewTradeService(s, batch, log)
	journals := NewDayJournalService(s, batch, log)
	return &Services{
		Trades:        trades,
		Emotions:      NewEmotionService(s, log),
		Confirmations: NewConfirmationService(s, log),
		DayJournals:   journals,
		Export:        NewExportService(trades, journals),
	}
}
