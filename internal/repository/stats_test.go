package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tolga/terp/internal/model"
	"github.com/tolga/terp/internal/repository"
	"github.com/tolga/terp/internal/testutil"
)

func TestPunchEventRepository_AttendanceStatsByRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	punchRepo := repository.NewPunchEventRepository(db)
	ctx := context.Background()

	site := "stats-site-" + uuid.New().String()[:8]
	employeeID := insertTestEmployee(t, db, "S-"+uuid.New().String()[:8], "Hugo", "Leon", site, "ops", true)
	start := time.Date(2026, 7, 27, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)

	insertTestPunch(t, db, employeeID, model.EventEntry, start, 8, 0, site)
	insertTestPunch(t, db, employeeID, model.EventExit, start, 17, 0, site)

	stats, err := punchRepo.AttendanceStatsByRange(ctx, start, end, site)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, site, stats[0].WorkSite)
	require.Equal(t, int64(2), stats[0].TotalPunches)
	require.Equal(t, int64(1), stats[0].UniqueEmployees)
	require.Equal(t, int64(1), stats[0].Entries)
	require.Equal(t, int64(1), stats[0].Exits)
}

func TestPunchEventRepository_UniqueEmployeeCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	punchRepo := repository.NewPunchEventRepository(db)
	ctx := context.Background()

	siteA := "stats-site-" + uuid.New().String()[:8]
	siteB := "stats-site-" + uuid.New().String()[:8]
	empA := insertTestEmployee(t, db, "S-"+uuid.New().String()[:8], "Ana", "Ruiz", siteA, "ops", true)
	empB := insertTestEmployee(t, db, "S-"+uuid.New().String()[:8], "Beto", "Diaz", siteB, "ops", true)
	start := time.Date(2026, 7, 27, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)

	insertTestPunch(t, db, empA, model.EventEntry, start, 8, 0, siteA)
	insertTestPunch(t, db, empB, model.EventEntry, start, 8, 0, siteB)

	count, err := punchRepo.UniqueEmployeeCount(ctx, start, end, "")
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	countSiteA, err := punchRepo.UniqueEmployeeCount(ctx, start, end, siteA)
	require.NoError(t, err)
	require.Equal(t, int64(1), countSiteA)
}
