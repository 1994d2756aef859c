package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/resource-sentinel/internal/storage"
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

func TestFileBackend_SaveLoadRoundTrip(t *testing.T) {
	backend, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	doc := models.MetricsDocument{
		Metrics: []models.Sample{
			{Timestamp: now, CPUPercent: 42.5, MemoryPercent: 61.2, DiskPercent: 70.1, LoadAverage: 1.8},
		},
		Updated: now,
	}

	require.NoError(t, backend.Save(context.Background(), storage.MetricsDocument, doc))

	var loaded models.MetricsDocument
	require.NoError(t, backend.Load(context.Background(), storage.MetricsDocument, &loaded))

	require.Len(t, loaded.Metrics, 1)
	assert.Equal(t, doc.Metrics[0].CPUPercent, loaded.Metrics[0].CPUPercent)
	assert.True(t, doc.Metrics[0].Timestamp.Equal(loaded.Metrics[0].Timestamp))
}

func TestFileBackend_LoadMissingDocument(t *testing.T) {
	backend, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	var doc models.MetricsDocument
	err = backend.Load(context.Background(), storage.MetricsDocument, &doc)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFileBackend_LoadCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	backend, err := storage.NewFileBackend(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, storage.MetricsDocument+".json")
	require.NoError(t, os.WriteFile(path, []byte(`{"metrics": [truncated`), 0o644))

	var doc models.MetricsDocument
	err = backend.Load(context.Background(), storage.MetricsDocument, &doc)
	assert.ErrorIs(t, err, storage.ErrCorrupt)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestFileBackend_SaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	backend, err := storage.NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, backend.Save(context.Background(), storage.AlertsDocument, models.AlertsDocument{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, storage.AlertsDocument+".json", entries[0].Name())
}

func TestFileBackend_CanceledContext(t *testing.T) {
	backend, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, backend.Save(ctx, storage.MetricsDocument, models.MetricsDocument{}))

	var doc models.MetricsDocument
	assert.Error(t, backend.Load(ctx, storage.MetricsDocument, &doc))
}

func TestFileBackend_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := storage.NewFileBackend(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
