package model

import "time"

// Post belongs to a User via user_id, removed in cascade with its
// owner.
type Post struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	UserID    int        `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// PostProperties is the declarative field table for Post.
var PostProperties = []Property{
	{Name: "id", Column: "id", Kind: "integer", Example: 1},
	{Name: "title", Column: "title", Kind: "string", Example: "My First Post"},
	{Name: "content", Column: "content", Kind: "string", Example: "This is the content of my first post."},
	{Name: "userId", Column: "user_id", Kind: "integer", Example: 1},
	{Name: "createdAt", Column: "created_at", Kind: "datetime", Example: "2024-01-01T12:00:00Z"},
	{Name: "updatedAt", Column: "updated_at", Kind: "datetime", Example: "2024-01-02T12:00:00Z", Nullable: true},
}
