package data

import (
	"database/sql"
	"time"
)

// Runs journal each curated playlist, so that partially submitted playlists
// can be inspected and retried later.
//
// Runs have many tracks via run_tracks and many batches via run_batches.
type Run struct {
	ID string

	// "artist" or "policy"
	Strategy   string
	SeedKind   string
	SeedID     string
	Creativity int

	TargetSeconds    float64
	OvershootSeconds float64
	AchievedSeconds  float64

	PlaylistID string
	CreatedAt  time.Time

	Tracks  []RunTrack `gorm:"-"`
	Batches []RunBatch `gorm:"-"`
}

// Status summarizes a run's batches: "ok" when every batch was appended,
// "failed" when none were, and "partial" otherwise. A run that never created
// a playlist is "failed".
func (r *Run) Status() string {
	if r.PlaylistID == "" {
		return "failed"
	}
	var failed int
	for _, batch := range r.Batches {
		if !batch.SubmittedAt.Valid {
			failed++
		}
	}
	switch {
	case failed == 0:
		return "ok"
	case failed == len(r.Batches):
		return "failed"
	default:
		return "partial"
	}
}

type RunTrack struct {
	RunID          string
	Position       int
	TrackSpotifyID string
	Name           string
	ArtistName     string
	DurationMS     int64 `gorm:"column:duration_ms"`
}

// RunBatch is one append call of up to 100 tracks. TrackSpotifyIDs is
// comma-separated, in playlist order.
type RunBatch struct {
	RunID           string
	BatchIndex      int
	TrackSpotifyIDs string `gorm:"column:track_spotify_ids"`

	SubmittedAt sql.NullTime
	FailedAt    sql.NullTime
	Error       string
}
