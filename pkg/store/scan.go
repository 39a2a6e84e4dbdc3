package store

import (
	"github.com/jackc/pgx/v5"

	"github.com/blogcore/blogd/pkg/model"
)

// Column lists are declared next to their scan functions; the scan order
// must match the column order exactly.
var (
	userColumns = []string{"users.id", "users.name", "users.email"}

	postColumns = []string{
		"posts.id", "posts.title", "posts.content",
		"posts.author_id", "posts.created_at",
	}

	postWithAuthorColumns = append(append([]string{}, postColumns...), userColumns...)
)

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email)
	return u, err
}

func scanPost(row pgx.Row) (model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt)
	return p, err
}

func scanPostWithAuthor(row pgx.Row) (model.Post, error) {
	var p model.Post
	var author model.User
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt,
		&author.ID, &author.Name, &author.Email,
	)
	if err != nil {
		return p, err
	}
	p.Author = &author
	return p, nil
}
