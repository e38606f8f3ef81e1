package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tradejournal/tradejournal-server/internal/model"
	"github.com/tradejournal/tradejournal-server/internal/store"
)

// DayJournalService orchestrates day journal use cases.
type DayJournalService struct {
	records records[model.DayJournal]
	coll    store.Collection
	batch   int
	log     zerolog.Logger
}

func NewDayJournalService(s store.Store, batch int, log zerolog.Logger) *DayJournalService {
	return &DayJournalService{
		records: newRecords[model.DayJournal]("day_journal", s.DayJournals(), log, nil),
		coll:    s.DayJournals(),
		batch:   batch,
		log:     log,
	}
}

func (s *DayJournalService) ListAll(ctx context.Context, skip, limit int, owner string) []model.DayJournal {
	return s.records.list(ctx, skip, limit, owner)
}

// ListByDateRange returns the journals dated within [start, end]. Records
// whose stored date does not parse are left out.
func (s *DayJournalService) ListByDateRange(ctx context.Context, start, end model.Date, owner string) ([]model.DayJournal, error) {
	if !start.Valid() {
		return nil, model.NewValidationError("start_date", "start_date is required")
	}
	if !end.Valid() {
		return nil, model.NewValidationError("end_date", "end_date is required")
	}
	if start.After(end) {
		return nil, model.NewValidationError("start_date", "start_date must be <= end_date")
	}
	docs, err := s.coll.ListByDateRange(ctx, store.DateRange{Field: store.FieldDate, Start: start, End: end}, owner)
	if err != nil {
		s.log.Error().Stack().Err(err).Msg("date range query failed")
		return []model.DayJournal{}, nil
	}
	out := make([]model.DayJournal, 0, len(docs))
	for _, j := range s.records.decodeAll(docs) {
		if j.Date.Valid() {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *DayJournalService) GetByID(ctx context.Context, id, owner string) (model.DayJournal, error) {
	return s.records.get(ctx, id, owner)
}

func (s *DayJournalService) Create(ctx context.Context, in model.DayJournalInput, owner string) (model.DayJournal, error) {
	return s.records.create(ctx, in.Fields(), owner)
}

func (s *DayJournalService) Update(ctx context.Context, id string, u model.DayJournalUpdate, owner string) (model.DayJournal, error) {
	return s.records.update(ctx, id, u.Fields(), owner)
}

func (s *DayJournalService) Delete(ctx context.Context, id, owner string) (model.DayJournal, error) {
	return s.records.delete(ctx, id, owner)
}

func (s *DayJournalService) Count(ctx context.Context, owner string) int {
	return s.records.count(ctx, owner)
}

// All scans every journal visible to owner.
func (s *DayJournalService) All(ctx context.Context, owner string) ([]model.DayJournal, error) {
	return s.records.all(ctx, owner, s.batch)
}
