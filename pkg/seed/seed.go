// Package seed creates the blog schema and loads fixture data. Records are
// only ever written here; both API surfaces are read-only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/blogcore/blogd/pkg/db"
)

// Summary reports what was loaded.
type Summary struct {
	Users int
	Posts int
}

var ddl = []string{
	`DROP TABLE IF EXISTS posts`,
	`DROP TABLE IF EXISTS users`,
	`CREATE TABLE users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE posts (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		author_id BIGINT NOT NULL REFERENCES users (id),
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX posts_author_id_idx ON posts (author_id)`,
	`CREATE INDEX posts_created_at_idx ON posts (created_at)`,
}

var users = []struct {
	name  string
	email string
}{
	{"Alice Johnson", "alice.johnson@example.com"},
	{"Bob Smith", "bob.smith@example.com"},
	{"Charlie Brown", "charlie.brown@example.com"},
}

// posts holds 15 fixture posts; five are assigned to each user in order.
var posts = []struct {
	title   string
	content string
}{
	{
		"Getting Started with Go Web Services",
		"Go ships with almost everything needed to build a web service. This post walks through the standard net/http package and when to reach beyond it.",
	},
	{
		"Understanding REST API Design Principles",
		"REST is an architectural style for networked applications. This article covers resource naming, status codes, and the conventions that keep an API predictable.",
	},
	{
		"Introduction to GraphQL: A Modern Approach",
		"GraphQL lets clients ask for exactly the fields they need. Learn how a single query endpoint can replace a cluster of purpose-built REST routes.",
	},
	{
		"Building Scalable Backend Systems",
		"As an application grows, scalability becomes crucial. This guide covers the patterns that let a backend absorb increasing load without a rewrite.",
	},
	{
		"Database Design Best Practices",
		"Good schema design is the foundation of any successful application. We discuss normalization, relationships, and indexes that keep queries fast.",
	},
	{
		"Mastering SQL Queries for Beginners",
		"SQL is a small language with a deep well of capability. This tutorial covers joins, aggregation, and the habits that make queries readable.",
	},
	{
		"Why PostgreSQL Is a Great Default Choice",
		"PostgreSQL combines standards compliance with a rich feature set. Here is why it is the first database to consider for most projects.",
	},
	{
		"Comparing REST and GraphQL APIs",
		"Both REST and GraphQL have strengths and weaknesses. This comparison helps you understand when each approach fits your project.",
	},
	{
		"Clean Code Principles Every Developer Should Know",
		"Writing clean, maintainable code pays for itself. Learn the fundamentals that make a codebase easy to read a year later.",
	},
	{
		"How to Structure Your Go Projects",
		"Organizing a Go repository properly from the start saves headaches later. This guide covers packages, cmd directories, and internal layouts.",
	},
	{
		"Understanding Database Relationships",
		"Relationships between tables are the heart of relational databases. Learn one-to-many and many-to-many modeling with practical examples.",
	},
	{
		"Building Your First JSON API in Go",
		"Ready to ship your first API? This step-by-step tutorial builds a small read-only JSON API backed by PostgreSQL.",
	},
	{
		"GraphQL vs REST: Which Should You Choose?",
		"Choosing between GraphQL and REST can be hard. We break down the trade-offs to help you pick for your next project.",
	},
	{
		"Essential Go Libraries for Backend Development",
		"Go's ecosystem includes sharp, focused libraries. Explore the ones worth knowing for building robust server applications.",
	},
	{
		"Connection Pools Explained",
		"Opening a database connection per query does not scale. This post explains how pools amortize connection cost and how to size them.",
	},
]

// Run drops and recreates the tables, then loads the fixtures. Timestamps
// are spread over the past sixty days so sorting by recency is meaningful.
func Run(ctx context.Context, database *db.DB) (Summary, error) {
	for _, stmt := range ddl {
		if _, err := database.Exec(ctx, stmt); err != nil {
			return Summary{}, fmt.Errorf("schema setup: %w", err)
		}
	}

	userIDs := make([]int64, 0, len(users))
	for _, u := range users {
		var id int64
		err := database.QueryRow(ctx,
			`INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`,
			u.name, u.email,
		).Scan(&id)
		if err != nil {
			return Summary{}, fmt.Errorf("insert user %q: %w", u.name, err)
		}
		userIDs = append(userIDs, id)
	}

	// Local RNG keeps the randomness explicit.
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	perUser := len(posts) / len(userIDs)
	batch := &pgx.Batch{}
	for i, p := range posts {
		authorID := userIDs[i/perUser]
		createdAt := now.Add(-time.Duration(1+r.Intn(60)) * 24 * time.Hour).
			Add(-time.Duration(r.Intn(24)) * time.Hour).
			Add(-time.Duration(r.Intn(60)) * time.Minute)

		batch.Queue(
			`INSERT INTO posts (title, content, author_id, created_at) VALUES ($1, $2, $3, $4)`,
			p.title, p.content, authorID, createdAt,
		)
	}

	results := database.SendBatch(ctx, batch)
	if err := results.Close(); err != nil {
		return Summary{}, fmt.Errorf("insert posts: %w", err)
	}

	return Summary{Users: len(userIDs), Posts: len(posts)}, nil
}
