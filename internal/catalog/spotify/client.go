// Package spotify provides a client for the Spotify Web API, used to look up
// song metadata when building playlists.
package spotify

import (
	"context"
	"log/slog"
	"strings"

	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// TrackResult represents a track from a Spotify search or lookup.
type TrackResult struct {
	SpotifyID  string `json:"spotify_id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	ArtworkURL string `json:"artwork_url"`
	DurationMs int    `json:"duration_ms"`
}

// Client wraps the Spotify Web API using the client-credentials flow. Tokens
// are refreshed automatically by the underlying oauth2 transport.
type Client struct {
	api    *spotifyapi.Client
	logger *slog.Logger
}

// NewClient creates a Spotify client from application credentials.
func NewClient(ctx context.Context, clientID, clientSecret string, logger *slog.Logger) *Client {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	httpClient := config.Client(ctx)

	return &Client{
		api:    spotifyapi.New(httpClient),
		logger: logger,
	}
}

// SearchTracks searches Spotify for tracks matching the query.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]TrackResult, error) {
	result, err := c.api.Search(ctx, query, spotifyapi.SearchTypeTrack, spotifyapi.Limit(limit))
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Spotify search results",
		"query", query,
		"count", len(result.Tracks.Tracks),
	)

	tracks := make([]TrackResult, 0, len(result.Tracks.Tracks))
	for i := range result.Tracks.Tracks {
		tracks = append(tracks, transform(&result.Tracks.Tracks[i]))
	}
	return tracks, nil
}

// GetTrack fetches a single track by its Spotify ID.
func (c *Client) GetTrack(ctx context.Context, id string) (*TrackResult, error) {
	track, err := c.api.GetTrack(ctx, spotifyapi.ID(id))
	if err != nil {
		return nil, err
	}
	result := transform(track)
	return &result, nil
}

func transform(t *spotifyapi.FullTrack) TrackResult {
	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}

	var artworkURL string
	if len(t.Album.Images) > 0 {
		artworkURL = t.Album.Images[0].URL
	}

	return TrackResult{
		SpotifyID:  string(t.ID),
		Title:      t.Name,
		Artist:     strings.Join(artists, ", "),
		Album:      t.Album.Name,
		ArtworkURL: artworkURL,
		DurationMs: int(t.Duration),
	}
}
