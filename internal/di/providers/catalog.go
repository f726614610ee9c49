package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/shelfbeat/shelfbeat-server/internal/catalog/openlibrary"
	"github.com/shelfbeat/shelfbeat-server/internal/catalog/spotify"
	"github.com/shelfbeat/shelfbeat-server/internal/config"
	"github.com/shelfbeat/shelfbeat-server/internal/logger"
)

// ProvideOpenLibraryClient provides the Open Library catalog client.
func ProvideOpenLibraryClient(i do.Injector) (*openlibrary.Client, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return openlibrary.NewClient(log.Logger), nil
}

// SpotifyClientHandle wraps the optional Spotify client. Client is nil when no
// credentials are configured; song search is disabled in that case.
type SpotifyClientHandle struct {
	Client *spotify.Client
}

// ProvideSpotifyClient provides the Spotify catalog client when credentials
// are configured.
func ProvideSpotifyClient(i do.Injector) (*SpotifyClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Catalog.SpotifyClientID == "" {
		log.Info("Spotify credentials not configured, song search disabled")
		return &SpotifyClientHandle{}, nil
	}

	client := spotify.NewClient(context.Background(),
		cfg.Catalog.SpotifyClientID,
		cfg.Catalog.SpotifyClientSecret,
		log.Logger,
	)

	log.Info("Spotify catalog client initialized")

	return &SpotifyClientHandle{Client: client}, nil
}
