package availabilities

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, caregivers ...string) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db := repotest.OpenSQLite(t)
	for _, c := range caregivers {
		_, err := db.Exec(`INSERT INTO caregivers (username, salt, hash, created_at) VALUES (?, x'00', x'00', '2024-01-01T00:00:00Z')`, c)
		require.NoError(t, err)
	}
	return NewSQLiteRepository(db), db
}

func TestSQLite_CreateAndList(t *testing.T) {
	r, _ := setup(t, "c2", "c1", "c3")
	ctx := context.Background()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, c := range []string{"c2", "c1"} {
		require.NoError(t, r.Create(ctx, models.AvailabilitySlot{Date: day, CaregiverUsername: c}))
	}
	require.NoError(t, r.Create(ctx, models.AvailabilitySlot{Date: day.AddDate(0, 0, 1), CaregiverUsername: "c3"}))

	got, err := r.ListCaregivers(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, got)

	got, err = r.ListCaregivers(ctx, day.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLite_DuplicateSlot(t *testing.T) {
	r, _ := setup(t, "c1")
	ctx := context.Background()
	slot := models.AvailabilitySlot{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), CaregiverUsername: "c1"}

	require.NoError(t, r.Create(ctx, slot))
	require.ErrorIs(t, r.Create(ctx, slot), common.ErrorAlreadyExists)
}

func TestSQLite_ClaimFirstAndDelete(t *testing.T) {
	r, _ := setup(t, "b", "a")
	ctx := context.Background()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := r.ClaimFirst(ctx, day)
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, r.Create(ctx, models.AvailabilitySlot{Date: day, CaregiverUsername: "b"}))
	require.NoError(t, r.Create(ctx, models.AvailabilitySlot{Date: day, CaregiverUsername: "a"}))

	first, err := r.ClaimFirst(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "a", first)

	require.NoError(t, r.Delete(ctx, day, first))
	require.ErrorIs(t, r.Delete(ctx, day, first), common.ErrorNotFound)

	next, err := r.ClaimFirst(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "b", next)
}

func TestSQLite_UnknownCaregiverRejected(t *testing.T) {
	r, _ := setup(t)

	err := r.Create(context.Background(), models.AvailabilitySlot{Date: time.Now(), CaregiverUsername: "ghost"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorAlreadyExists)
}
