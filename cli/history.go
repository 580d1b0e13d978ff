package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/amonks/journey/db"
	"github.com/amonks/journey/setflag"
	"github.com/amonks/journey/subcmd"
)

func history(db *db.DB, args []string) error {
	subcmd := subcmd.New("history", "list curated playlists, newest first")
	statuses := setflag.New("ok", "partial", "failed")
	subcmd.Var(statuses, "status", "only show runs with these statuses: ok, partial, failed (comma-separated)")
	limit := subcmd.Int("limit", 20, "number of runs to show; 0 for all")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	runs, err := db.ListRuns(statuses.List(), *limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "run\tcreated\tstrategy\tseed\ttrip\tlength\tbatches\tstatus\tplaylist")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\t%s\t%s\t%d\t%s\t%s\n",
			run.ID,
			run.CreatedAt.Local().Format(time.DateTime),
			run.Strategy,
			run.SeedKind, run.SeedID,
			formatSeconds(run.TargetSeconds),
			formatSeconds(run.AchievedSeconds),
			len(run.Batches),
			run.Status(),
			run.PlaylistID)
	}
	tw.Flush()

	return nil
}
