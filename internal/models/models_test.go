package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
	}{
		{"defaults", Page{}, Page{Skip: 0, Limit: DefaultPageLimit}},
		{"negative skip", Page{Skip: -1, Limit: 5}, Page{Skip: 0, Limit: 5}},
		{"negative limit", Page{Skip: 2, Limit: -5}, Page{Skip: 2, Limit: DefaultPageLimit}},
		{"kept", Page{Skip: 3, Limit: 2}, Page{Skip: 3, Limit: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestUserDB_PublicHidesDigest(t *testing.T) {
	row := UserDB{ID: 1, Username: "alice", Email: "a@x.com", HashedPassword: "$2a$10$digest"}

	data, err := json.Marshal(row.Public())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"username":"alice","email":"a@x.com"}`, string(data))
	assert.NotContains(t, string(data), "digest")

	full := row.Full()
	assert.Equal(t, "$2a$10$digest", full.HashedPassword)
}

func TestProjections(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	post := PostDB{ID: 1, Title: "t", Content: "c", OwnerID: 2, CreatedAt: now}.Projection()
	assert.Equal(t, Post{ID: 1, Title: "t", Content: "c", OwnerID: 2, CreatedAt: now}, post)

	comment := CommentDB{ID: 3, PostID: 1, Content: "nice", OwnerID: 2, CreatedAt: now}.Projection()
	assert.Equal(t, Comment{ID: 3, Content: "nice", PostID: 1, OwnerID: 2, CreatedAt: now}, comment)
}
