package curate

import (
	"context"

	"github.com/amonks/journey/data"
	"github.com/amonks/journey/logging"
	"github.com/amonks/journey/workers"
)

// EnrichPreviews fills in PreviewURL for tracks that lack one by scraping
// their ExternalURL pages, at most limit at a time. Failures are logged and
// skipped. It returns how many tracks got a preview.
func EnrichPreviews(ctx context.Context, scraper PreviewScraper, tracks []data.Track, limit int) int {
	var missing []int
	for i, t := range tracks {
		if t.PreviewURL == "" && t.ExternalURL != "" {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return 0
	}

	log := logging.Ctx(ctx)
	urls, _, err := workers.Map(ctx, limit, missing, func(ctx context.Context, i int) (string, error) {
		url, err := scraper.PreviewURL(ctx, tracks[i].ExternalURL)
		if err != nil {
			log.Warn().Err(err).Str("track", tracks[i].SpotifyID).Msg("preview scrape failed")
			return "", nil
		}
		return url, nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("preview enrichment stopped")
	}

	filled := 0
	for n, i := range missing {
		if urls[n] != "" {
			tracks[i].PreviewURL = urls[n]
			filled++
		}
	}
	return filled
}
