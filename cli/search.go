package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/amonks/journey/data"
	"github.com/amonks/journey/spotify"
	"github.com/amonks/journey/subcmd"
)

// how many results a search returns
const searchLimit = 10

func search(ctx context.Context, spo *spotify.Client, args []string) error {
	subcmd := subcmd.New("search", "search spotify for an artist or track to seed a playlist with")
	subcmd.SetArg("query", "string", "search query (required)")
	kind := subcmd.String("type", "artist", "what to search for: 'artist' or 'track'")
	offset := subcmd.Int("offset", 0, "number of results to skip")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	query := strings.Join(subcmd.Args(), " ")
	if query == "" {
		subcmd.Usage()
		return fmt.Errorf("no query")
	}
	seedKind, err := data.ParseSeedKind(*kind)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	switch seedKind {
	case data.SeedArtist:
		artists, err := spo.SearchArtists(ctx, query, searchLimit, *offset)
		if err != nil {
			return err
		}
		if len(artists) == 0 {
			fmt.Printf("no artists for '%s'\n", query)
			return nil
		}
		fmt.Fprintln(tw, "spotify_id\tartist\tpopularity\tgenres")
		for _, artist := range artists {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", artist.SpotifyID, artist.Name, artist.Popularity, strings.Join(artist.Genres, ", "))
		}

	case data.SeedTrack:
		tracks, err := spo.SearchTracks(ctx, query, searchLimit, *offset)
		if err != nil {
			return err
		}
		if len(tracks) == 0 {
			fmt.Printf("no tracks for '%s'\n", query)
			return nil
		}
		printTracks(tw, tracks)
	}

	return nil
}

// printTracks writes one row per track to a tabwriter.
func printTracks(tw *tabwriter.Writer, tracks []data.Track) {
	fmt.Fprintln(tw, "spotify_id\ttrack\tartists\tlength\tpreview")
	for _, track := range tracks {
		artists := make([]string, len(track.Artists))
		for i, artist := range track.Artists {
			artists[i] = artist.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			track.SpotifyID,
			track.Name,
			strings.Join(artists, ", "),
			formatSeconds(track.Seconds()),
			track.PreviewURL)
	}
}
