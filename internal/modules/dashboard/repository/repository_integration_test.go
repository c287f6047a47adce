//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"anoa.com/magangportal/internal/bootstrap"
	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/pkg/testutil/containers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardQueriesOnSampleData(t *testing.T) {
	db := containers.NewPostgresDB(t)
	require.NoError(t, bootstrap.Migrate(db))
	containers.Truncate(t, db, "applications", "applicants", "postings", "departments")

	now := time.Now().UTC()
	today := entity.Today(now, time.UTC)
	require.NoError(t, bootstrap.SeedSampleData(db, today))
	// Seeding twice leaves the data untouched.
	require.NoError(t, bootstrap.SeedSampleData(db, today))

	ctx := context.Background()
	repo := NewDashboardRepository(db)

	total, err := repo.CountApplicants(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)

	recent, err := repo.CountApplicantsBetween(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(15), recent)

	times, err := repo.ApplicantCreatedTimes(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, times, 15)

	postings, err := repo.CountActivePostings(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(20), postings)

	postings, err = repo.CountActivePostings(ctx, today.AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.Zero(t, postings)

	departments, err := repo.CountActiveDepartments(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(9), departments)

	byStatus, err := repo.CountApplicationsByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), byStatus[entity.StatusApproved])
	assert.Equal(t, int64(5), byStatus[entity.StatusPending])
	assert.Equal(t, int64(2), byStatus[entity.StatusRejected])

	top, err := repo.TopDepartments(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, []DepartmentCount{
		{Name: "Engineering", Count: 3},
		{Name: "Marketing", Count: 3},
		{Name: "Accounting", Count: 2},
		{Name: "Product Management", Count: 2},
	}, top)

	latest, err := repo.RecentApplications(ctx, 3)
	require.NoError(t, err)
	require.Len(t, latest, 3)
	assert.Equal(t, "Bayu Aditya", latest[0].Applicant.Name)
	assert.Equal(t, "Product Management", latest[0].Posting.Department.Name)
}
