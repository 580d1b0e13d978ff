package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/amonks/journey/config"
	"github.com/amonks/journey/data"
	"github.com/amonks/journey/spotify"
	"github.com/amonks/journey/subcmd"
)

func pool(ctx context.Context, cfg *config.Config, spo *spotify.Client, args []string) error {
	subcmd := subcmd.New("pool", "print the candidate pool a playlist would be picked from")
	flags := addRequestFlags(subcmd)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	req, err := flags.request()
	if err != nil {
		subcmd.Usage()
		return err
	}

	c, err := newCurator(cfg, spo, false)
	if err != nil {
		return err
	}
	run, err := c.BuildPool(ctx, req)
	if err != nil && len(run.Pool) == 0 {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	printTracks(tw, run.Pool)
	tw.Flush()

	printer.Printf("\n%d tracks from %d artists, %s\n", len(run.Pool), len(run.Artists), formatSeconds(data.TotalSeconds(run.Pool)))
	return err
}
