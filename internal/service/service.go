// Package service provides the business logic layer for author verification,
// playlists, and libraries.
package service

import "github.com/shelfbeat/shelfbeat-server/internal/validation"

// validate is a shared validator instance for request validation.
var validate = validation.New()
