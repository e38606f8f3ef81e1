package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tradejournal/tradejournal-server/internal/model"
	"github.com/tradejournal/tradejournal-server/internal/stats"
	"github.com/tradejournal/tradejournal-server/internal/store"
)

// TradeService orchestrates trade use cases.
type TradeService struct {
	records records[model.Trade]
	batch   int
	log     zerolog.Logger
}

func NewTradeService(s store.Store, batch int, log zerolog.Logger) *TradeService {
	return &TradeService{
		records: newRecords("trade", s.Trades(), log, fixTrade),
		batch:   batch,
		log:     log,
	}
}

func fixTrade(t *model.Trade) {
	if t.Emotions == nil {
		t.Emotions = []string{}
	}
	if t.Confirmations == nil {
		t.Confirmations = []string{}
	}
}

// ListAll returns a page of trades, newest first. A page holding any
// unparseable date is returned in store order instead.
func (s *TradeService) ListAll(ctx context.Context, skip, limit int, owner string) []model.Trade {
	trades := s.records.list(ctx, skip, limit, owner)
	sortByDateDesc(trades, s.log)
	return trades
}

func sortByDateDesc(trades []model.Trade, log zerolog.Logger) {
	for _, t := range trades {
		if !t.Date.Valid() {
			log.Warn().Str("id", t.ID).Str("date", t.Date.String()).Msg("unsortable trade date, keeping store order")
			return
		}
	}
	sort.SliceStable(trades, func(i, j int) bool { return trades[i].Date.After(trades[j].Date) })
}

func (s *TradeService) GetByID(ctx context.Context, id, owner string) (model.Trade, error) {
	return s.records.get(ctx, id, owner)
}

func (s *TradeService) Create(ctx context.Context, in model.TradeInput, owner string) (model.Trade, error) {
	return s.records.create(ctx, in.Fields(), owner)
}

func (s *TradeService) Update(ctx context.Context, id string, u model.TradeUpdate, owner string) (model.Trade, error) {
	return s.records.update(ctx, id, u.Fields(), owner)
}

func (s *TradeService) Delete(ctx context.Context, id, owner string) (model.Trade, error) {
	return s.records.delete(ctx, id, owner)
}

func (s *TradeService) Count(ctx context.Context, owner string) int {
	return s.records.count(ctx, owner)
}

// All scans every trade visible to owner.
func (s *TradeService) All(ctx context.Context, owner string) ([]model.Trade, error) {
	return s.records.all(ctx, owner, s.batch)
}

// Summary aggregates the owner's full trade set. A failed scan is logged and
// summarizes what was read.
func (s *TradeService) Summary(ctx context.Context, owner string) model.Summary {
	trades, err := s.All(ctx, owner)
	if err != nil {
		s.log.Error().Stack().Err(err).Msg("trade scan for summary failed")
	}
	return stats.Summarize(trades)
}
