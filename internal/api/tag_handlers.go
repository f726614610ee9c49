package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns all tags ordered by slug",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPlaylistTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/playlists/{id}/tags",
		Summary:     "List playlist tags",
		Description: "Returns a playlist's tags ordered by slug",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListPlaylistTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "addPlaylistTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/playlists/{id}/tags",
		Summary:     "Tag playlist",
		Description: "Attaches a tag to a playlist, creating the tag on first use. Owner only; clones reject tagging.",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddPlaylistTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "removePlaylistTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/playlists/{id}/tags/{slug}",
		Summary:     "Untag playlist",
		Description: "Detaches a tag from a playlist. Detaching an absent tag is a no-op.",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemovePlaylistTag)
}

// === DTOs ===

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID        string    `json:"id" doc:"Tag ID"`
	Slug      string    `json:"slug" doc:"Normalized tag slug"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

// ListTagsInput contains parameters for listing tags.
type ListTagsInput struct {
	Authorization string `header:"Authorization"`
}

// ListTagsResponse contains a list of tags.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"Tags ordered by slug"`
}

// ListTagsOutput wraps the list tags response for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// PlaylistTagsInput contains parameters for listing a playlist's tags.
type PlaylistTagsInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Playlist ID"`
}

// AddTagRequest is the request body for tagging a playlist.
type AddTagRequest struct {
	Tag string `json:"tag" validate:"required,min=1,max=80" doc:"Tag name (normalized to a slug)"`
}

// AddTagInput wraps the add-tag request for Huma.
type AddTagInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Playlist ID"`
	Body          AddTagRequest
}

// TagOutput wraps a tag response for Huma.
type TagOutput struct {
	Body TagResponse
}

// RemoveTagInput contains parameters for untagging a playlist.
type RemoveTagInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Playlist ID"`
	Slug          string `path:"slug" doc:"Tag slug"`
}

func toTagResponse(tag *domain.Tag) TagResponse {
	return TagResponse{
		ID:        tag.ID,
		Slug:      tag.Slug,
		CreatedAt: tag.CreatedAt,
	}
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, input *ListTagsInput) (*ListTagsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]TagResponse, len(tags))
	for i, tag := range tags {
		resp[i] = toTagResponse(tag)
	}

	return &ListTagsOutput{Body: ListTagsResponse{Tags: resp}}, nil
}

func (s *Server) handleListPlaylistTags(ctx context.Context, input *PlaylistTagsInput) (*ListTagsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.ListForPlaylist(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]TagResponse, len(tags))
	for i, tag := range tags {
		resp[i] = toTagResponse(tag)
	}

	return &ListTagsOutput{Body: ListTagsResponse{Tags: resp}}, nil
}

func (s *Server) handleAddPlaylistTag(ctx context.Context, input *AddTagInput) (*TagOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	tag, _, err := s.services.Tag.AddToPlaylist(ctx, input.ID, userID, input.Body.Tag)
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: toTagResponse(tag)}, nil
}

func (s *Server) handleRemovePlaylistTag(ctx context.Context, input *RemoveTagInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tag.RemoveFromPlaylist(ctx, input.ID, userID, input.Slug); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Tag removed"}}, nil
}
