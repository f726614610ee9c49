package api

import (
	"github.com/shelfbeat/shelfbeat-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth        *service.AuthService
	Application *service.ApplicationService
	Book        *service.BookService
	Playlist    *service.PlaylistService
	Library     *service.LibraryService
	Tag         *service.TagService
	Song        *service.SongService
}
