package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/tradejournal/tradejournal-server/internal/model"
)

// ExportService dumps a caller's whole journal.
type ExportService struct {
	trades  *TradeService
	journal *DayJournalService
	now     func() time.Time
}

func NewExportService(trades *TradeService, journal *DayJournalService) *ExportService {
	return &ExportService{trades: trades, journal: journal, now: time.Now}
}

// Export reads trades and day journals concurrently. Unlike page reads, a
// failed scan fails the export rather than returning a partial dump.
func (s *ExportService) Export(ctx context.Context, owner string) (model.Export, error) {
	var (
		trades   []model.Trade
		journals []model.DayJournal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trades, err = s.trades.All(gctx, owner)
		return errors.Wrap(err, "export trades")
	})
	g.Go(func() error {
		var err error
		journals, err = s.journal.All(gctx, owner)
		return errors.Wrap(err, "export day journals")
	})
	if err := g.Wait(); err != nil {
		return model.Export{}, err
	}
	return model.Export{
		Trades:      trades,
		DayJournals: journals,
		Metadata: model.ExportMetadata{
			TotalTrades:      len(trades),
			TotalDayJournals: len(journals),
			ExportDate:       s.now().UTC().Format(time.RFC3339),
		},
	}, nil
}
