package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/userhubapp/userhub/internal/model"
	"github.com/userhubapp/userhub/internal/sqlerr"
)

// UserRepository runs the SQL behind user reads and writes.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateUserParams carries the already validated column values for an
// insert. Avatar is the storage key of the uploaded file, empty when
// no file was submitted.
type CreateUserParams struct {
	Name     string
	Email    string
	Password string
	Avatar   string
}

const createUserQuery = `
INSERT INTO users (name, email, password, avatar)
VALUES ($1, $2, $3, NULLIF($4, ''))
RETURNING id, COALESCE(name, ''), email, COALESCE(avatar, ''), created_at, updated_at
`

// Create inserts a user and returns the stored row. Database failures
// are converted so callers can inspect the violation kind.
func (r *UserRepository) Create(ctx context.Context, params CreateUserParams) (model.User, error) {
	var user model.User
	err := r.pool.QueryRow(ctx, createUserQuery,
		params.Name, params.Email, params.Password, params.Avatar,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Avatar, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return model.User{}, errors.WithStack(sqlerr.Convert(err))
	}

	user.Posts = []model.Post{}
	return user, nil
}

const listUsersQuery = `
SELECT id, COALESCE(name, ''), email, COALESCE(avatar, ''), created_at, updated_at
FROM users
ORDER BY id
`

const listPostsQuery = `
SELECT id, title, COALESCE(content, ''), user_id, created_at, updated_at
FROM posts
WHERE user_id = ANY($1)
ORDER BY id
`

// ListWithPosts returns every user together with their posts. Users
// without posts carry an empty slice, and a database with no users
// yields an empty slice rather than nil.
func (r *UserRepository) ListWithPosts(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, listUsersQuery)
	if err != nil {
		return nil, errors.WithStack(sqlerr.Convert(err))
	}
	defer rows.Close()

	users := []model.User{}
	index := map[int]int{}
	ids := []int{}

	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Avatar, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, errors.WithStack(sqlerr.Convert(err))
		}
		user.Posts = []model.Post{}
		index[user.ID] = len(users)
		ids = append(ids, user.ID)
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(sqlerr.Convert(err))
	}

	if len(ids) == 0 {
		return users, nil
	}

	postRows, err := r.pool.Query(ctx, listPostsQuery, ids)
	if err != nil {
		return nil, errors.WithStack(sqlerr.Convert(err))
	}
	defer postRows.Close()

	for postRows.Next() {
		var post model.Post
		if err := postRows.Scan(&post.ID, &post.Title, &post.Content, &post.UserID, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, errors.WithStack(sqlerr.Convert(err))
		}
		if i, ok := index[post.UserID]; ok {
			users[i].Posts = append(users[i].Posts, post)
		}
	}
	if err := postRows.Err(); err != nil {
		return nil, errors.WithStack(sqlerr.Convert(err))
	}

	return users, nil
}
