// Package db journals curation runs in a sqlite3 database file.
//
// See schema.sql for the tables.
package db

import (
	"database/sql"
	_ "embed"
	"fmt"
	"slices"
	"time"

	"github.com/amonks/journey/data"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB represents our sqlite3 database file.
type DB struct{ *gorm.DB }

//go:embed schema.sql
var schema string

// Open returns a connection to a migrated sqlite3 database file on disk,
// creating the file and running migrations if necessary.
func Open(filename string) (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening db file at '%s': %w", filename, err)
	}

	db := &DB{gdb}

	if err := db.Exec(schema).Error; err != nil {
		return nil, fmt.Errorf("error migrating db at '%s': %w", filename, err)
	}

	return db, nil
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("error getting sql db: %w", err)
	}
	return sqlDB.Close()
}

// RecordRun inserts a run along with its tracks and batches.
func (db *DB) RecordRun(run *data.Run) error {
	if run.ID == "" {
		return fmt.Errorf("no run id")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return fmt.Errorf("error inserting run '%s': %w", run.ID, err)
		}
		if len(run.Tracks) > 0 {
			if err := tx.CreateInBatches(run.Tracks, 100).Error; err != nil {
				return fmt.Errorf("error inserting tracks for run '%s': %w", run.ID, err)
			}
		}
		if len(run.Batches) > 0 {
			if err := tx.Create(run.Batches).Error; err != nil {
				return fmt.Errorf("error inserting batches for run '%s': %w", run.ID, err)
			}
		}
		return nil
	})
}

// GetRun loads a run with its tracks, in position order, and its batches.
func (db *DB) GetRun(id string) (*data.Run, error) {
	var run data.Run
	if err := db.
		Table("runs").
		Where("id = ?", id).
		First(&run).
		Error; err != nil {
		return nil, fmt.Errorf("error getting run '%s': %w", id, err)
	}

	if err := db.
		Table("run_tracks").
		Where("run_id = ?", id).
		Order("position asc").
		Find(&run.Tracks).
		Error; err != nil {
		return nil, fmt.Errorf("error getting tracks for run '%s': %w", id, err)
	}

	batches, err := db.getBatches(id)
	if err != nil {
		return nil, err
	}
	run.Batches = batches

	return &run, nil
}

func (db *DB) getBatches(runID string) ([]data.RunBatch, error) {
	var batches []data.RunBatch
	if err := db.
		Table("run_batches").
		Where("run_id = ?", runID).
		Order("batch_index asc").
		Find(&batches).
		Error; err != nil {
		return nil, fmt.Errorf("error getting batches for run '%s': %w", runID, err)
	}
	return batches, nil
}

// ListRuns returns up to limit runs, newest first, with their batches but
// not their tracks. If statuses is non-empty, only runs whose Status is one
// of them are returned. limit <= 0 means no limit.
func (db *DB) ListRuns(statuses []string, limit int) ([]data.Run, error) {
	var runs []data.Run
	if err := db.
		Table("runs").
		Order("created_at desc").
		Find(&runs).
		Error; err != nil {
		return nil, fmt.Errorf("error listing runs: %w", err)
	}

	var out []data.Run
	for _, run := range runs {
		batches, err := db.getBatches(run.ID)
		if err != nil {
			return nil, err
		}
		run.Batches = batches

		if len(statuses) > 0 && !slices.Contains(statuses, run.Status()) {
			continue
		}
		out = append(out, run)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// FailedBatches returns the batches of a run that haven't been appended,
// in order.
func (db *DB) FailedBatches(runID string) ([]data.RunBatch, error) {
	var batches []data.RunBatch
	if err := db.
		Table("run_batches").
		Where("run_id = ?", runID).
		Where("submitted_at is null").
		Order("batch_index asc").
		Find(&batches).
		Error; err != nil {
		return nil, fmt.Errorf("error getting failed batches for run '%s': %w", runID, err)
	}
	return batches, nil
}

func (db *DB) MarkBatchSubmitted(runID string, batchIndex int, at time.Time) error {
	if err := db.
		Table("run_batches").
		Where("run_id = ? and batch_index = ?", runID, batchIndex).
		Updates(map[string]any{
			"submitted_at": at,
			"failed_at":    sql.NullTime{},
			"error":        "",
		}).
		Error; err != nil {
		return fmt.Errorf("error marking batch %d of run '%s' submitted: %w", batchIndex, runID, err)
	}
	return nil
}

func (db *DB) MarkBatchFailed(runID string, batchIndex int, at time.Time, reason string) error {
	if err := db.
		Table("run_batches").
		Where("run_id = ? and batch_index = ?", runID, batchIndex).
		Updates(map[string]any{
			"failed_at": at,
			"error":     reason,
		}).
		Error; err != nil {
		return fmt.Errorf("error marking batch %d of run '%s' failed: %w", batchIndex, runID, err)
	}
	return nil
}
