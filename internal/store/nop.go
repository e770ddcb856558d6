package store

import (
	"context"

	"github.com/amishk599/remotefeed/internal/model"
)

// NopStore is a no-op store used in dry-run mode. It never records anything,
// so every job appears new on each poll.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) IsDuplicate(ctx context.Context, job model.ClassifiedJob) (bool, error) {
	return false, nil
}

func (s *NopStore) Count(ctx context.Context) (int, error) { return 0, nil }

func (s *NopStore) Recent(ctx context.Context, n int) ([]model.PostedRecord, error) {
	return nil, nil
}
