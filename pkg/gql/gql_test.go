package gql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogcore/blogd/pkg/db"
	"github.com/blogcore/blogd/pkg/model"
	"github.com/blogcore/blogd/pkg/store"
)

type fakeStore struct {
	users []model.User
	posts []model.Post
}

func (f *fakeStore) ListPosts(_ context.Context, p store.ListParams) (*model.Paginated[model.Post], error) {
	limit := p.Limit
	if limit > len(f.posts) {
		limit = len(f.posts)
	}
	return &model.Paginated[model.Post]{
		Data:       f.posts[:limit],
		Pagination: model.NewPagination(p.Page, p.Limit, int64(len(f.posts))),
	}, nil
}

func (f *fakeStore) GetUser(_ context.Context, id int64) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeStore) ListUsers(context.Context) ([]model.User, error) {
	return f.users, nil
}

func (f *fakeStore) UserPosts(_ context.Context, userID int64, limit int) ([]model.Post, error) {
	out := []model.Post{}
	for _, p := range f.posts {
		if p.AuthorID == userID && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func testSchema(t *testing.T) (*graphql.Schema, *fakeStore) {
	t.Helper()

	fs := &fakeStore{
		users: []model.User{
			{ID: 1, Name: "Alice Johnson", Email: "alice.johnson@example.com"},
			{ID: 2, Name: "Bob Smith", Email: "bob.smith@example.com"},
		},
	}

	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := int64(1); i <= 15; i++ {
		authorID := int64(1)
		if i > 10 {
			authorID = 2
		}
		fs.posts = append(fs.posts, model.Post{
			ID:        i,
			Title:     "Post",
			Content:   "Content",
			AuthorID:  authorID,
			CreatedAt: created.Add(-time.Duration(i) * time.Hour),
		})
	}

	schema, err := graphql.ParseSchema(Schema, NewResolver(fs, zerolog.Nop()))
	require.NoError(t, err)
	return schema, fs
}

func exec(t *testing.T, schema *graphql.Schema, query string) (json.RawMessage, []string) {
	t.Helper()

	resp := schema.Exec(context.Background(), query, "", nil)
	msgs := make([]string, len(resp.Errors))
	for i, e := range resp.Errors {
		msgs[i] = e.Message
	}
	return resp.Data, msgs
}

func TestPostsQuery(t *testing.T) {
	schema, _ := testSchema(t)

	data, errs := exec(t, schema, `query {
		posts(limit: 5) {
			data { id title authorId createdAt }
			pagination { page limit total totalPages }
		}
	}`)
	require.Empty(t, errs)

	var body struct {
		Posts struct {
			Data []struct {
				ID        int32  `json:"id"`
				AuthorID  int32  `json:"authorId"`
				CreatedAt string `json:"createdAt"`
			} `json:"data"`
			Pagination struct {
				Page       int32 `json:"page"`
				Limit      int32 `json:"limit"`
				Total      int32 `json:"total"`
				TotalPages int32 `json:"totalPages"`
			} `json:"pagination"`
		} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(data, &body))

	assert.Len(t, body.Posts.Data, 5)
	assert.Equal(t, int32(1), body.Posts.Pagination.Page)
	assert.Equal(t, int32(5), body.Posts.Pagination.Limit)
	assert.Equal(t, int32(15), body.Posts.Pagination.Total)
	assert.Equal(t, int32(3), body.Posts.Pagination.TotalPages)

	_, err := time.Parse(time.RFC3339, body.Posts.Data[0].CreatedAt)
	assert.NoError(t, err)
}

func TestPostsValidation(t *testing.T) {
	schema, _ := testSchema(t)

	tests := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{"page zero", `query { posts(page: 0) { pagination { total } } }`, "Page number must be greater than 0"},
		{"limit zero", `query { posts(limit: 0) { pagination { total } } }`, "Limit must be between 1 and 100"},
		{"limit too large", `query { posts(limit: 101) { pagination { total } } }`, "Limit must be between 1 and 100"},
		{"unknown sort field", `query { posts(sortBy: "email") { pagination { total } } }`, "sortBy must be one of: created_at, title, id"},
		{"invalid order", `query { posts(order: "sideways") { pagination { total } } }`, "order must be 'asc' or 'desc'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := exec(t, schema, tt.query)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantMsg, errs[0])
		})
	}
}

func TestNestedAuthor(t *testing.T) {
	schema, _ := testSchema(t)

	data, errs := exec(t, schema, `query {
		posts(limit: 3) { data { authorId author { id name } } }
	}`)
	require.Empty(t, errs)

	var body struct {
		Posts struct {
			Data []struct {
				AuthorID int32 `json:"authorId"`
				Author   *struct {
					ID   int32  `json:"id"`
					Name string `json:"name"`
				} `json:"author"`
			} `json:"data"`
		} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(data, &body))

	for _, p := range body.Posts.Data {
		require.NotNil(t, p.Author)
		assert.Equal(t, p.AuthorID, p.Author.ID)
	}
}

func TestUserQuery(t *testing.T) {
	schema, _ := testSchema(t)

	data, errs := exec(t, schema, `query {
		user(id: 1) { name posts(limit: 3) { id authorId } }
	}`)
	require.Empty(t, errs)

	var body struct {
		User struct {
			Name  string `json:"name"`
			Posts []struct {
				AuthorID int32 `json:"authorId"`
			} `json:"posts"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(data, &body))

	assert.Equal(t, "Alice Johnson", body.User.Name)
	assert.Len(t, body.User.Posts, 3)
	for _, p := range body.User.Posts {
		assert.Equal(t, int32(1), p.AuthorID)
	}
}

func TestUserNotFoundIsNull(t *testing.T) {
	schema, _ := testSchema(t)

	data, errs := exec(t, schema, `query { user(id: 42) { name } }`)
	require.Empty(t, errs)
	assert.JSONEq(t, `{"user": null}`, string(data))
}

func TestUserPostsLimitValidation(t *testing.T) {
	schema, _ := testSchema(t)

	_, errs := exec(t, schema, `query { user(id: 1) { posts(limit: 0) { id } } }`)
	require.NotEmpty(t, errs)
	assert.Equal(t, "Limit must be between 1 and 100", errs[0])
}

func TestUsersQuery(t *testing.T) {
	schema, _ := testSchema(t)

	data, errs := exec(t, schema, `query { users { id email } }`)
	require.Empty(t, errs)

	var body struct {
		Users []struct {
			ID int32 `json:"id"`
		} `json:"users"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Len(t, body.Users, 2)
}

func TestHTTPHandler(t *testing.T) {
	_, fs := testSchema(t)
	handler := NewHandler(NewResolver(fs, zerolog.Nop()), zerolog.Nop())

	t.Run("post", func(t *testing.T) {
		body := strings.NewReader(`{"query": "query { posts(limit: 5) { pagination { total totalPages } } }"}`)
		req := httptest.NewRequest(http.MethodPost, "/graphql", body)
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"data": {"posts": {"pagination": {"total": 15, "totalPages": 3}}}}`,
			rec.Body.String())
	})

	t.Run("get", func(t *testing.T) {
		target := "/graphql?query=" + "query%20%7B%20users%20%7B%20id%20%7D%20%7D"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"users"`)
	})

	t.Run("bad body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Not a valid GraphQL request body")
	})

	t.Run("validation error in errors array", func(t *testing.T) {
		body := strings.NewReader(`{"query": "query { posts(limit: 0) { pagination { total } } }"}`)
		req := httptest.NewRequest(http.MethodPost, "/graphql", body)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Limit must be between 1 and 100")
	})
}
