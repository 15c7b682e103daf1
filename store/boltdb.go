// Package store persists comparison reports in a BoltDB key-value database.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/ohsu-comp-bio/balancer/harness"
	"github.com/ohsu-comp-bio/balancer/logger"
	"github.com/ohsu-comp-bio/balancer/model"
	"github.com/ohsu-comp-bio/balancer/util"
	"github.com/ohsu-comp-bio/balancer/util/fsutil"
)

var log = logger.NewSubLogger("store")

// ErrNotFound is returned when a report ID is unknown.
var ErrNotFound = errors.New("report not found")

// ReportBucket maps report ID -> report summary (everything but the workload).
var ReportBucket = []byte("reports")

// WorkloadBucket maps report ID -> the tasks and resources the report ran over.
var WorkloadBucket = []byte("report-workloads")

// View controls how much of a report is loaded.
type View int

// Report views.
const (
	// Summary loads the ID, creation time, seed and metrics.
	Summary View = iota
	// Full also loads the tasks and resources.
	Full
)

// BoltDB stores reports in a BoltDB database.
type BoltDB struct {
	db *bolt.DB
}

type summary struct {
	ID        string
	CreatedAt time.Time
	Seed      int64
	Metrics   []harness.Metrics
}

type workload struct {
	Tasks     []model.Task
	Resources []model.Resource
}

// Open opens the database at the configured path, creating the parent
// directories as needed. While another process holds the database lock,
// opening is retried a few times with backoff.
func Open(conf config.BoltDB) (*BoltDB, error) {
	if err := fsutil.EnsurePath(conf.Path); err != nil {
		return nil, err
	}

	timeout := time.Duration(conf.Timeout)
	if timeout <= 0 {
		timeout = time.Second
	}

	r := util.NewRetrier()
	r.ShouldRetry = func(err error) bool {
		return errors.Is(err, bolt.ErrTimeout)
	}
	r.Notify = func(err error, d time.Duration) {
		log.Warn("Database is locked, retrying", "path", conf.Path, "wait", d.String())
	}

	var db *bolt.DB
	err := r.Retry(context.Background(), func() error {
		var err error
		db, err = bolt.Open(conf.Path, 0600, &bolt.Options{Timeout: timeout})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", conf.Path, err)
	}
	return &BoltDB{db: db}, nil
}

// Init creates the required BoltDB buckets.
func (b *BoltDB) Init() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{ReportBucket, WorkloadBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the database.
func (b *BoltDB) Close() error {
	return b.db.Close()
}

// PutReport stores a report, replacing any report with the same ID.
func (b *BoltDB) PutReport(r *harness.Report) error {
	if r == nil || r.ID == "" {
		return fmt.Errorf("report has no ID")
	}
	sum, err := json.Marshal(summary{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Seed:      r.Seed,
		Metrics:   r.Metrics,
	})
	if err != nil {
		return err
	}
	wl, err := json.Marshal(workload{Tasks: r.Tasks, Resources: r.Resources})
	if err != nil {
		return err
	}

	id := []byte(r.ID)
	err = b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(ReportBucket).Put(id, sum); err != nil {
			return err
		}
		return tx.Bucket(WorkloadBucket).Put(id, wl)
	})
	if err != nil {
		return fmt.Errorf("storing report in database: %w", err)
	}
	return nil
}

// GetReport loads the report with the given ID.
func (b *BoltDB) GetReport(id string, view View) (*harness.Report, error) {
	var r *harness.Report
	err := b.db.View(func(tx *bolt.Tx) error {
		var err error
		r, err = loadReport(tx, []byte(id), view)
		return err
	})
	return r, err
}

// ListReports returns up to limit reports, newest first.
// A limit of zero or less returns every report.
func (b *BoltDB) ListReports(limit int, view View) ([]*harness.Report, error) {
	var out []*harness.Report
	err := b.db.View(func(tx *bolt.Tx) error {
		// Report IDs sort by creation time, so the newest is last.
		c := tx.Bucket(ReportBucket).Cursor()
		for k, _ := c.Last(); k != nil; k, _ = c.Prev() {
			if limit > 0 && len(out) >= limit {
				break
			}
			r, err := loadReport(tx, k, view)
			if err != nil {
				return err
			}
			out = append(out, r)
		}
		return nil
	})
	return out, err
}

// DeleteReport removes a report.
func (b *BoltDB) DeleteReport(id string) error {
	key := []byte(id)
	return b.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(ReportBucket).Get(key) == nil {
			return ErrNotFound
		}
		if err := tx.Bucket(ReportBucket).Delete(key); err != nil {
			return err
		}
		return tx.Bucket(WorkloadBucket).Delete(key)
	})
}

func loadReport(tx *bolt.Tx, id []byte, view View) (*harness.Report, error) {
	raw := tx.Bucket(ReportBucket).Get(id)
	if raw == nil {
		return nil, ErrNotFound
	}
	var s summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", id, err)
	}
	r := &harness.Report{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Seed:      s.Seed,
		Metrics:   s.Metrics,
	}

	if view == Full {
		raw := tx.Bucket(WorkloadBucket).Get(id)
		if raw != nil {
			var w workload
			if err := json.Unmarshal(raw, &w); err != nil {
				return nil, fmt.Errorf("decoding report %s workload: %w", id, err)
			}
			r.Tasks = w.Tasks
			r.Resources = w.Resources
		}
	}
	return r, nil
}
