package service

import (
	"context"
	"testing"
	"time"

	"cardgen/internal/clients"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) (*StatusTracker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := clients.NewRedisClient(context.Background(), clients.RedisConfig{Addr: mr.Addr(), Timeout: time.Second, Prefix: "cardgen_"})
	require.NoError(t, err)
	t.Cleanup(rc.Close)
	return NewStatusTracker(rc), mr
}

func TestStatusTracker_SaveAndList(t *testing.T) {
	tracker, mr := newTestTracker(t)
	ctx := context.Background()

	older := &ExportStatus{Key: "exports:old", Type: "credit_card_fixtures", Created: time.Now().Add(-time.Hour)}
	newer := &ExportStatus{Key: "exports:new", Type: "credit_card_fixtures", Progress: 100, Created: time.Now()}
	require.NoError(t, tracker.Save(ctx, older))
	require.NoError(t, tracker.Save(ctx, newer))

	assert.Equal(t, exportTTL, mr.TTL("cardgen_exports:new"))

	got, err := tracker.Get(ctx, "exports:new")
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.Progress)

	list, err := tracker.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "exports:new", list[0].Key)

	// expired runs drop out of the listing
	mr.FastForward(exportTTL + time.Second)
	list, err = tracker.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStatusTracker_NilStoreIsNoop(t *testing.T) {
	var tracker *StatusTracker
	assert.NoError(t, tracker.Save(context.Background(), &ExportStatus{Key: "exports:x"}))

	_, err := NewStatusTracker(nil).Get(context.Background(), "exports:x")
	assert.Error(t, err)
}

func TestExport_TracksStatus(t *testing.T) {
	tracker, _ := newTestTracker(t)
	storage, err := clients.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	svc := NewExportService(storage, nil, tracker, zerolog.Nop())
	status, err := svc.Export(context.Background(), newTestGenerator(t, 42).Generate(1), ExportOptions{Seed: 42})
	require.NoError(t, err)

	stored, err := tracker.Get(context.Background(), status.Key)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stored.Progress)
	assert.Equal(t, uint64(42), stored.Seed)
	assert.Len(t, stored.Files, len(expectedFiles))
	assert.Nil(t, stored.Error)
}
