package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfbeat/shelfbeat-server/internal/auth"
	"github.com/shelfbeat/shelfbeat-server/internal/catalog/openlibrary"
	"github.com/shelfbeat/shelfbeat-server/internal/logger"
	"github.com/shelfbeat/shelfbeat-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideApplicationService provides the author application service.
func ProvideApplicationService(i do.Injector) (*service.ApplicationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewApplicationService(storeHandle.Store, log.Logger), nil
}

// ProvideBookService provides the book catalog service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	openLibrary := do.MustInvoke[*openlibrary.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, openLibrary, log.Logger), nil
}

// ProvidePlaylistService provides the playlist service.
func ProvidePlaylistService(i do.Injector) (*service.PlaylistService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	spotifyHandle := do.MustInvoke[*SpotifyClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	var tracks service.TrackLookup
	if spotifyHandle.Client != nil {
		tracks = spotifyHandle.Client
	}

	return service.NewPlaylistService(storeHandle.Store, tracks, log.Logger), nil
}

// ProvideLibraryService provides the library service.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLibraryService(storeHandle.Store, log.Logger), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, log.Logger), nil
}

// ProvideSongService provides the song search service.
func ProvideSongService(i do.Injector) (*service.SongService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	spotifyHandle := do.MustInvoke[*SpotifyClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	var tracks service.TrackSearcher
	if spotifyHandle.Client != nil {
		tracks = spotifyHandle.Client
	}

	return service.NewSongService(storeHandle.Store, tracks, log.Logger), nil
}
