// Package store is the data-access layer. It translates pagination, sort
// and search parameters into parameterized queries and hydrates result rows
// into domain records. Business-rule validation is the surface layers' job;
// the store only distinguishes found, not found, and query failure.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/blogcore/blogd/pkg/db"
	"github.com/blogcore/blogd/pkg/model"
	"github.com/blogcore/blogd/pkg/sqlbuild"
)

// DefaultUserPostsLimit is the number of recent posts returned for a user
// when the caller does not ask for a specific amount.
const DefaultUserPostsLimit = 3

// postSortColumns is the allow-list of sortable post columns. Anything not
// in here falls back to created_at.
var postSortColumns = map[string]string{
	"created_at": "posts.created_at",
	"title":      "posts.title",
	"id":         "posts.id",
}

// ListParams holds the query parameters for ListPosts.
type ListParams struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
	Search string
}

// Store provides read access to users and posts.
type Store struct {
	db *db.DB
}

// New creates a Store backed by the given database.
func New(database *db.DB) *Store {
	return &Store{db: database}
}

// sortColumn resolves a user-supplied sort field against the allow-list.
func sortColumn(sortBy string) string {
	if col, ok := postSortColumns[sortBy]; ok {
		return col
	}
	return postSortColumns["created_at"]
}

// ListPosts returns one page of posts, each with its author attached.
// The total is counted over the same search predicate, independent of
// page and limit.
func (s *Store) ListPosts(ctx context.Context, p ListParams) (*model.Paginated[model.Post], error) {
	q := sqlbuild.Select(postWithAuthorColumns...).
		From("posts").
		Join("users", "posts.author_id = users.id")

	if p.Search != "" {
		pattern := "%" + p.Search + "%"
		q.Where("(posts.title ILIKE ? OR posts.content ILIKE ?)", pattern, pattern)
	}

	countSQL, countArgs := q.CountSQL()
	var total int64
	if err := s.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, err
	}

	result := &model.Paginated[model.Post]{
		Data:       []model.Post{},
		Pagination: model.NewPagination(p.Page, p.Limit, total),
	}
	if total == 0 {
		return result, nil
	}

	q.OrderBy(sortColumn(p.SortBy), sqlbuild.ParseDirection(p.Order)).
		Limit(p.Limit).
		Offset((p.Page - 1) * p.Limit)

	sql, args := q.ToSQL()
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		post, err := scanPostWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		result.Data = append(result.Data, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// GetPost returns a single post with its author attached,
// or db.ErrNotFound.
func (s *Store) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	sql, args := sqlbuild.Select(postWithAuthorColumns...).
		From("posts").
		Join("users", "posts.author_id = users.id").
		Where("posts.id = ?", id).
		ToSQL()

	post, err := scanPostWithAuthor(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetUser returns a single user, or db.ErrNotFound.
func (s *Store) GetUser(ctx context.Context, id int64) (*model.User, error) {
	sql, args := sqlbuild.Select(userColumns...).
		From("users").
		Where("users.id = ?", id).
		ToSQL()

	user, err := scanUser(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users ordered by id ascending.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	sql, args := sqlbuild.Select(userColumns...).
		From("users").
		OrderBy("users.id", sqlbuild.Asc).
		ToSQL()

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// UserPosts returns the given user's most recent posts, newest first.
// The author is not attached; it is implied by the query.
func (s *Store) UserPosts(ctx context.Context, userID int64, limit int) ([]model.Post, error) {
	sql, args := sqlbuild.Select(postColumns...).
		From("posts").
		Where("posts.author_id = ?", userID).
		OrderBy("posts.created_at", sqlbuild.Desc).
		Limit(limit).
		ToSQL()

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
