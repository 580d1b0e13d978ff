package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/amonks/journey/curate"
	"github.com/amonks/journey/data"
	"github.com/amonks/journey/db"
	"github.com/amonks/journey/logging"
	"github.com/amonks/journey/spotify"
	"github.com/amonks/journey/subcmd"
)

func retry(ctx context.Context, spo *spotify.Client, db *db.DB, args []string) error {
	subcmd := subcmd.New("retry", "append a run's failed batches to its playlist again")
	subcmd.SetArg("run-id", "string", "id of the run, as printed by curate and history (required)")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	if subcmd.NArg() != 1 {
		subcmd.Usage()
		return fmt.Errorf("expected exactly one run id")
	}
	runID := subcmd.Arg(0)

	run, err := db.GetRun(runID)
	if err != nil {
		return err
	}
	if run.PlaylistID == "" {
		return fmt.Errorf("run '%s' never created a playlist", runID)
	}

	rows, err := db.FailedBatches(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Printf("run %s has no failed batches\n", runID)
		return nil
	}

	ctx = logging.WithRunID(ctx, runID)

	// Submitted batches stay in the list so the failed ones land at their
	// original offsets.
	batches := curate.BatchesFromJournal(run.Batches)
	retryErr := curate.RetryBatches(ctx, spo, run.PlaylistID, batches)

	now := time.Now()
	var fixed int
	for _, b := range batches {
		if !slices.ContainsFunc(rows, func(row data.RunBatch) bool { return row.BatchIndex == b.Index }) {
			continue
		}
		if b.Err != nil {
			if err := db.MarkBatchFailed(runID, b.Index, now, b.Err.Error()); err != nil {
				return err
			}
			continue
		}
		if err := db.MarkBatchSubmitted(runID, b.Index, now); err != nil {
			return err
		}
		fixed++
	}

	fmt.Printf("appended %d of %d failed batches to playlist %s\n", fixed, len(rows), run.PlaylistID)
	return retryErr
}
