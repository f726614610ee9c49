package domain

import "time"

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleReader is the default role for new signups.
	RoleReader Role = "reader"
	// RoleAuthor is granted when an author-verification application is approved.
	RoleAuthor Role = "author"
	// RoleAdmin grants full administrative access, including application review.
	RoleAdmin Role = "admin"
)

// User represents an authenticated user account in the system.
//
// AuthorKeys holds the external author identifiers (Open Library author keys)
// the user has been verified for. It is empty unless Role is author, and is
// populated only by application approval, never by the user directly.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	AuthorKeys   []string  `json:"author_keys,omitempty"`
	AuthorBio    string    `json:"author_bio,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user has administrative privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsAuthor returns true if the user is a verified author.
func (u *User) IsAuthor() bool {
	return u.Role == RoleAuthor
}

// OwnsBook reports whether the user is the verified author of the book:
// the user holds the author role and at least one of their author keys
// matches one of the book's recorded author keys.
//
// Pure function over already-loaded records; performs no I/O.
func (u *User) OwnsBook(b *Book) bool {
	if u == nil || b == nil || !u.IsAuthor() {
		return false
	}
	for _, key := range u.AuthorKeys {
		for _, bookKey := range b.AuthorKeys {
			if key == bookKey {
				return true
			}
		}
	}
	return false
}

// Name returns the best available name to display for the user.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}
