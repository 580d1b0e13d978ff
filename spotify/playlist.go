package spotify

import (
	"context"
	"fmt"
	"net/url"

	"github.com/amonks/journey/request"
)

// CurrentUser returns the id of the user the client acts as.
func (spo *Client) CurrentUser(ctx context.Context) (string, error) {
	var result struct {
		ID string `json:"id"`
	}
	if err := spo.get(ctx, "/me", nil, false, &result); err != nil {
		return "", fmt.Errorf("error fetching current user: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("%w: current user has no id", ErrSpotify)
	}
	return result.ID, nil
}

// CreatePlaylist creates a new private playlist owned by the given user and
// returns its id. Every call creates a new playlist.
func (spo *Client) CreatePlaylist(ctx context.Context, userID, name, description string) (string, error) {
	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      false,
	}
	var result struct {
		ID string `json:"id"`
	}
	if err := spo.post(ctx, "/users/"+url.PathEscape(userID)+"/playlists", body, &result); err != nil {
		return "", fmt.Errorf("error creating playlist '%s': %w", name, err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("%w: created playlist '%s' has no id", ErrSpotify, name)
	}
	return result.ID, nil
}

// AppendTracks inserts up to MaxAppendBatch tracks into a playlist, in order,
// starting at position. Position 0 is the top of the playlist.
func (spo *Client) AppendTracks(ctx context.Context, playlistID string, position int, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return nil
	}
	if position < 0 {
		return fmt.Errorf("invalid playlist position %d", position)
	}
	if len(trackIDs) > MaxAppendBatch {
		return fmt.Errorf("can't append %d tracks in one call; the limit is %d", len(trackIDs), MaxAppendBatch)
	}

	uris := make([]string, len(trackIDs))
	for i, id := range trackIDs {
		uris[i] = "spotify:track:" + id
	}

	body := map[string]any{
		"uris":     uris,
		"position": position,
	}
	if err := spo.post(ctx, "/playlists/"+url.PathEscape(playlistID)+"/tracks", body, nil); err != nil {
		return fmt.Errorf("error adding %d tracks to playlist '%s' at %d: %w", len(trackIDs), playlistID, position, err)
	}
	return nil
}

// PreviewURL scrapes a track's public page for its audio preview. The API
// often leaves preview_url empty even when the page has one.
func (spo *Client) PreviewURL(ctx context.Context, externalURL string) (string, error) {
	doc, err := request.FetchHTML(ctx, spo.web, externalURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSpotify, err)
	}
	content, _ := doc.Find(`meta[property="og:audio"]`).Attr("content")
	return content, nil
}
