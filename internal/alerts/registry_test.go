package alerts_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/resource-sentinel/internal/alerts"
	"github.com/OldStager01/resource-sentinel/internal/storage"
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

func newTestRegistry(t *testing.T) (*alerts.Registry, storage.Backend) {
	t.Helper()
	backend, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return alerts.NewRegistry(backend), backend
}

func TestRegistry_Create_Dedup(t *testing.T) {
	r, _ := newTestRegistry(t)

	first, created := r.Create("cpu_high", models.SeverityHigh, "cpu at 85%", 85, 80)
	require.True(t, created)

	// Same type while unacknowledged: absorbed, original returned.
	second, created := r.Create("cpu_high", models.SeverityCritical, "cpu at 97%", 97, 80)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.SeverityHigh, second.Severity, "existing alert is not updated")
	assert.Equal(t, 1, r.Len())

	// A different type is independent.
	_, created = r.Create("disk_high", models.SeverityMedium, "disk at 92%", 92, 90)
	assert.True(t, created)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_AcknowledgeReopensType(t *testing.T) {
	r, _ := newTestRegistry(t)

	first, _ := r.Create("memory_high", models.SeverityHigh, "memory at 90%", 90, 85)

	require.True(t, r.Acknowledge(first.ID))
	assert.False(t, r.Acknowledge("no_such_id"))

	// Acknowledged alerts leave the active set and free the type.
	assert.Empty(t, r.Active(""))

	second, created := r.Create("memory_high", models.SeverityHigh, "memory at 91%", 91, 85)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestRegistry_ReraisedTypeGetsDistinctID(t *testing.T) {
	r, _ := newTestRegistry(t)

	first, created := r.Create("cpu_high", models.SeverityHigh, "cpu at 85%", 85, 80)
	require.True(t, created)
	require.True(t, r.Acknowledge(first.ID))

	// Re-raised within the same second; the new alert must remain
	// individually addressable.
	second, created := r.Create("cpu_high", models.SeverityHigh, "cpu at 86%", 86, 80)
	require.True(t, created)
	assert.NotEqual(t, first.ID, second.ID)

	require.True(t, r.Acknowledge(second.ID))
	assert.Empty(t, r.Active(""))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_Active_FilterAndOrder(t *testing.T) {
	r, _ := newTestRegistry(t)

	r.Create("a_info", models.SeverityInfo, "fyi", 1, 0)
	r.Create("b_medium", models.SeverityMedium, "warn", 2, 0)
	r.Create("c_critical", models.SeverityCritical, "bad", 3, 0)
	r.Create("d_high", models.SeverityHigh, "watch", 4, 0)

	all := r.Active("")
	require.Len(t, all, 4)
	assert.Equal(t, "c_critical", all[0].Type)
	assert.Equal(t, "d_high", all[1].Type)
	assert.Equal(t, "b_medium", all[2].Type)
	assert.Equal(t, "a_info", all[3].Type)

	filtered := r.Active(models.SeverityHigh)
	require.Len(t, filtered, 2)
	assert.Equal(t, "c_critical", filtered[0].Type)
	assert.Equal(t, "d_high", filtered[1].Type)
}

func TestRegistry_ClearAcknowledged(t *testing.T) {
	r, _ := newTestRegistry(t)

	a, _ := r.Create("cpu_high", models.SeverityHigh, "cpu", 85, 80)
	r.Create("disk_high", models.SeverityMedium, "disk", 92, 90)

	require.True(t, r.Acknowledge(a.ID))

	assert.Equal(t, 1, r.ClearAcknowledged())
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 0, r.ClearAcknowledged())
}

func TestRegistry_ClearOlderThan(t *testing.T) {
	r, _ := newTestRegistry(t)

	r.Create("cpu_high", models.SeverityHigh, "cpu", 85, 80)

	// Everything was just created, so a day-long retention keeps it.
	assert.Equal(t, 0, r.ClearOlderThan(24*time.Hour))
	assert.Equal(t, 1, r.Len())

	// A negative retention puts the cutoff in the future.
	assert.Equal(t, 1, r.ClearOlderThan(-time.Hour))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_PersistsAcrossRestart(t *testing.T) {
	backend, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	r := alerts.NewRegistry(backend)
	created, _ := r.Create("cpu_high", models.SeverityHigh, "cpu at 85%", 85, 80)

	reloaded := alerts.NewRegistry(backend)
	active := reloaded.Active("")
	require.Len(t, active, 1)
	assert.Equal(t, created.ID, active[0].ID)
	assert.Equal(t, created.Message, active[0].Message)
}

func TestRegistry_CorruptStateStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	backend, err := storage.NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "alerts.json"), []byte("{not json"), 0o644))

	var doc models.AlertsDocument
	err = backend.Load(context.Background(), storage.AlertsDocument, &doc)
	require.ErrorIs(t, err, storage.ErrCorrupt)

	r := alerts.NewRegistry(backend)
	assert.Equal(t, 0, r.Len())
}
