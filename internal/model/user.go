package model

import "time"

// User is a registered account. The password column is persisted but
// never serialized.
type User struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Avatar    string     `json:"avatar"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`

	// Posts is the eagerly loaded one-to-many relation. Always a
	// slice, never nil, so users without posts serialize as [].
	Posts []Post `json:"posts"`
}

// UserProperties is the declarative field table for User.
var UserProperties = []Property{
	{Name: "id", Column: "id", Kind: "integer", Example: 1},
	{Name: "name", Column: "name", Kind: "string", Example: "John Doe"},
	{Name: "email", Column: "email", Kind: "string", Example: "john.doe@example.com"},
	{Name: "avatar", Column: "avatar", Kind: "string", Example: "avatars/4b7f3f0e.png"},
	{Name: "createdAt", Column: "created_at", Kind: "datetime", Example: "2024-01-01T12:00:00Z"},
	{Name: "updatedAt", Column: "updated_at", Kind: "datetime", Example: "2024-01-02T12:00:00Z", Nullable: true},
}
