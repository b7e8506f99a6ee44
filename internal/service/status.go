package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

const (
	exportSetKey = "export_ids"
	exportTTL    = 20 * time.Minute
)

// ExportStatus is the progress record of one generation run.
type ExportStatus struct {
	Key      string    `json:"key"`
	Type     string    `json:"type"`
	Seed     uint64    `json:"seed"`
	Progress float64   `json:"progress"`
	Files    []string  `json:"files"`
	FileURLs []string  `json:"file_urls,omitempty"`
	Error    *string   `json:"error"`
	Created  time.Time `json:"created_at"`
}

type StatusStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	SAdd(ctx context.Context, key string, members ...any) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

type StatusTracker struct {
	redis StatusStore
}

func NewStatusTracker(redis StatusStore) *StatusTracker {
	return &StatusTracker{redis: redis}
}

func (t *StatusTracker) Save(ctx context.Context, st *ExportStatus) error {
	if t == nil || t.redis == nil {
		return nil
	}

	data, err := json.Marshal(st)
	if err != nil {
		return err
	}

	if err := t.redis.Set(ctx, st.Key, string(data), exportTTL); err != nil {
		return err
	}

	return t.redis.SAdd(ctx, exportSetKey, st.Key)
}

func (t *StatusTracker) Get(ctx context.Context, key string) (*ExportStatus, error) {
	if t == nil || t.redis == nil {
		return nil, errors.New("redis client not configured")
	}

	data, err := t.redis.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("export %s not found: %w", key, err)
	}

	var st ExportStatus
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return nil, fmt.Errorf("failed to parse export status: %w", err)
	}
	return &st, nil
}

// List returns the runs still alive in redis, newest first. Expired members
// of the id set are skipped.
func (t *StatusTracker) List(ctx context.Context) ([]ExportStatus, error) {
	if t == nil || t.redis == nil {
		return nil, errors.New("redis client not configured")
	}

	keys, err := t.redis.SMembers(ctx, exportSetKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get export keys: %w", err)
	}

	var statuses []ExportStatus
	for _, key := range keys {
		st, err := t.Get(ctx, key)
		if err != nil {
			continue
		}
		statuses = append(statuses, *st)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Created.After(statuses[j].Created)
	})

	return statuses, nil
}
