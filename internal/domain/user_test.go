package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_OwnsBook(t *testing.T) {
	book := &Book{
		ID:         "bok-1",
		Title:      "The Hollow Orchard",
		AuthorKeys: []string{"OL1A", "OL2A"},
	}

	tests := []struct {
		name string
		user *User
		want bool
	}{
		{
			name: "author with matching key",
			user: &User{Role: RoleAuthor, AuthorKeys: []string{"OL1A"}},
			want: true,
		},
		{
			name: "author with one of several matching keys",
			user: &User{Role: RoleAuthor, AuthorKeys: []string{"OL9Z", "OL2A"}},
			want: true,
		},
		{
			name: "author without matching key",
			user: &User{Role: RoleAuthor, AuthorKeys: []string{"OL9Z"}},
			want: false,
		},
		{
			name: "reader with matching key is not an owner",
			user: &User{Role: RoleReader, AuthorKeys: []string{"OL1A"}},
			want: false,
		},
		{
			name: "admin with matching key is not an owner",
			user: &User{Role: RoleAdmin, AuthorKeys: []string{"OL1A"}},
			want: false,
		},
		{
			name: "author with no keys",
			user: &User{Role: RoleAuthor},
			want: false,
		},
		{
			name: "nil user",
			user: nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.OwnsBook(book))
		})
	}
}

func TestUser_OwnsBook_NilBook(t *testing.T) {
	u := &User{Role: RoleAuthor, AuthorKeys: []string{"OL1A"}}
	assert.False(t, u.OwnsBook(nil))
}

func TestUser_OwnsBook_BookWithoutKeys(t *testing.T) {
	u := &User{Role: RoleAuthor, AuthorKeys: []string{"OL1A"}}
	assert.False(t, u.OwnsBook(&Book{ID: "bok-2"}))
}

func TestUser_Roles(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleAuthor}).IsAdmin())
	assert.True(t, (&User{Role: RoleAuthor}).IsAuthor())
	assert.False(t, (&User{Role: RoleReader}).IsAuthor())
}

func TestUser_Name(t *testing.T) {
	assert.Equal(t, "Quinn", (&User{DisplayName: "Quinn", Email: "q@example.com"}).Name())
	assert.Equal(t, "q@example.com", (&User{Email: "q@example.com"}).Name())
}
