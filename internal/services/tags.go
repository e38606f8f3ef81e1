package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tradejournal/tradejournal-server/internal/model"
	"github.com/tradejournal/tradejournal-server/internal/store"
)

// TagService manages a catalog of tag definitions. Emotions and
// confirmations each get their own instance.
type TagService struct {
	records records[model.Tag]
}

func NewEmotionService(s store.Store, log zerolog.Logger) *TagService {
	return &TagService{records: newRecords[model.Tag]("emotion", s.Emotions(), log, nil)}
}

func NewConfirmationService(s store.Store, log zerolog.Logger) *TagService {
	return &TagService{records: newRecords[model.Tag]("confirmation", s.Confirmations(), log, nil)}
}

func (s *TagService) ListAll(ctx context.Context, skip, limit int, owner string) []model.Tag {
	return s.records.list(ctx, skip, limit, owner)
}

func (s *TagService) GetByID(ctx context.Context, id, owner string) (model.Tag, error) {
	return s.records.get(ctx, id, owner)
}

func (s *TagService) Create(ctx context.Context, in model.TagInput, owner string) (model.Tag, error) {
	return s.records.create(ctx, in.Fields(), owner)
}

func (s *TagService) Update(ctx context.Context, id string, u model.TagUpdate, owner string) (model.Tag, error) {
	return s.records.update(ctx, id, u.Fields(), owner)
}

func (s *TagService) Delete(ctx context.Context, id, owner string) (model.Tag, error) {
	return s.records.delete(ctx, id, owner)
}

func (s *TagService) Count(ctx context.Context, owner string) int {
	return s.records.count(ctx, owner)
}
