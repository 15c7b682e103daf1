package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/boltdb/bolt"
	"github.com/go-test/deep"
	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/ohsu-comp-bio/balancer/harness"
	"github.com/ohsu-comp-bio/balancer/model"
	"github.com/ohsu-comp-bio/balancer/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *BoltDB {
	t.Helper()
	conf := config.BoltDB{Path: filepath.Join(t.TempDir(), "nested", "balancer.db")}
	db, err := Open(conf)
	require.NoError(t, err)
	require.NoError(t, db.Init())
	t.Cleanup(func() { db.Close() })
	return db
}

func testReport(seed int64) *harness.Report {
	return &harness.Report{
		ID:        util.GenRunID(),
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Seed:      seed,
		Tasks:     []model.Task{{ID: 0, Length: 1000, PriorityLevel: 2}, {ID: 1, Length: 1020}},
		Resources: []model.Resource{{ID: 0, Rate: 1000, Cores: 1}},
		Metrics: []harness.Metrics{
			{Policy: "round-robin", TotalCompletionTime: 2.02, AverageCompletionTime: 1.01, Makespan: 2.02, Seed: seed},
		},
	}
}

func TestReportRoundTrip(t *testing.T) {
	db := testDB(t)
	r := testReport(42)
	require.NoError(t, db.PutReport(r))

	got, err := db.GetReport(r.ID, Full)
	require.NoError(t, err)
	if diff := deep.Equal(got, r); diff != nil {
		t.Error(diff)
	}

	sum, err := db.GetReport(r.ID, Summary)
	require.NoError(t, err)
	assert.Nil(t, sum.Tasks)
	assert.Nil(t, sum.Resources)
	assert.Equal(t, r.Metrics, sum.Metrics)
}

func TestGetReportNotFound(t *testing.T) {
	db := testDB(t)
	_, err := db.GetReport("missing", Full)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReportsNewestFirst(t *testing.T) {
	db := testDB(t)

	var ids []string
	for i := 0; i < 3; i++ {
		r := testReport(int64(i))
		ids = append(ids, r.ID)
		require.NoError(t, db.PutReport(r))
	}

	all, err := db.ListReports(0, Summary)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[1], all[1].ID)
	assert.Equal(t, ids[0], all[2].ID)

	two, err := db.ListReports(2, Full)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, ids[2], two[0].ID)
	assert.NotEmpty(t, two[0].Tasks)
}

func TestDeleteReport(t *testing.T) {
	db := testDB(t)
	r := testReport(1)
	require.NoError(t, db.PutReport(r))

	require.NoError(t, db.DeleteReport(r.ID))
	_, err := db.GetReport(r.ID, Full)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.DeleteReport(r.ID), ErrNotFound)
}

func TestPutReportWithoutID(t *testing.T) {
	db := testDB(t)
	assert.Error(t, db.PutReport(&harness.Report{}))
	assert.Error(t, db.PutReport(nil))
}

func TestOpenLocked(t *testing.T) {
	db := testDB(t)
	path := db.db.Path()

	_, err := Open(config.BoltDB{Path: path, Timeout: config.Duration(10 * time.Millisecond)})
	assert.ErrorIs(t, err, bolt.ErrTimeout)
}
