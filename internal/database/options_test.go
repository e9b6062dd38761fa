package database

import (
	"context"
	"testing"

	"github.com/chamberhub/bizportal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	ID     int64 `gorm:"primaryKey"`
	Name   string
	Sector string
}

func (testRow) TableName() string { return "test_rows" }

type rowMapper struct{}

func (rowMapper) ToDomain(e testRow) testRow { return e }
func (rowMapper) ToModel(d testRow) testRow  { return d }

func seedRows(t *testing.T) Repository[testRow, testRow] {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, db.Session(context.Background()).AutoMigrate(&testRow{}))

	repo := NewRepository[testRow, testRow](db, rowMapper{}, "row")
	for _, r := range []testRow{
		{Name: "Green Factory", Sector: "manufacturing"},
		{Name: "Blue Logistics", Sector: "logistics"},
		{Name: "100%_Solar", Sector: "energy"},
	} {
		_, err := repo.Create(context.Background(), r)
		require.NoError(t, err)
	}
	return repo
}

func TestRepository_FindWithSearch(t *testing.T) {
	repo := seedRows(t)
	ctx := context.Background()

	rows, err := repo.Find(ctx, repository.WithSearch("GREEN", "name", "sector"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Green Factory", rows[0].Name)

	rows, err = repo.Find(ctx, repository.WithSearch("logist", "name", "sector"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestRepository_SearchEscapesWildcards(t *testing.T) {
	repo := seedRows(t)

	rows, err := repo.Find(context.Background(), repository.WithSearch("%_", "name"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "100%_Solar", rows[0].Name)
}

func TestRepository_OrderLimitCount(t *testing.T) {
	repo := seedRows(t)
	ctx := context.Background()

	opts := append([]repository.Option{repository.WithOrderDesc("name")}, repository.WithPagination(2, 0)...)
	rows, err := repo.Find(ctx, opts...)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Green Factory", rows[0].Name)

	count, err := repo.Count(ctx, opts...)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "count ignores pagination")
}

func TestRepository_FindOneNotFound(t *testing.T) {
	repo := seedRows(t)

	_, err := repo.FindOne(context.Background(), repository.WithID(int64(999)))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_DeleteBy(t *testing.T) {
	repo := seedRows(t)
	ctx := context.Background()

	n, err := repo.DeleteBy(ctx, repository.WithConditionIn("sector", []string{"energy", "logistics"}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	exists, err := repo.Exists(ctx, repository.WithCondition("sector", "energy"))
	require.NoError(t, err)
	assert.False(t, exists)
}
