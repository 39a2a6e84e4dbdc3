package gql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/blogcore/blogd/pkg/db"
	"github.com/blogcore/blogd/pkg/model"
	"github.com/blogcore/blogd/pkg/store"
)

// Store is the data access required by the GraphQL resolvers.
type Store interface {
	ListPosts(ctx context.Context, p store.ListParams) (*model.Paginated[model.Post], error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UserPosts(ctx context.Context, userID int64, limit int) ([]model.Post, error)
}

// Validation failures surface as GraphQL errors; storage failures are
// masked behind errInternal so no internal detail leaks to clients.
var (
	errPageTooSmall = errors.New("Page number must be greater than 0")
	errBadLimit     = errors.New("Limit must be between 1 and 100")
	errBadSortBy    = errors.New("sortBy must be one of: created_at, title, id")
	errBadOrder     = errors.New("order must be 'asc' or 'desc'")
	errInternal     = errors.New("Internal server error")
)

// sortFields are the post fields clients may sort by. The REST surface
// falls back silently on unknown fields; here an unknown field is a
// query error.
var sortFields = map[string]bool{
	"created_at": true,
	"title":      true,
	"id":         true,
}

// Resolver is the root query resolver.
type Resolver struct {
	store Store
	log   zerolog.Logger
}

// NewResolver creates the root resolver.
func NewResolver(s Store, log zerolog.Logger) *Resolver {
	return &Resolver{store: s, log: log}
}

func (r *Resolver) internal(err error) error {
	r.log.Error().Err(err).Msg("graphql resolver failed")
	return errInternal
}

// PostsArgs are the arguments of the Query.posts field.
type PostsArgs struct {
	Page   *int32
	Limit  *int32
	SortBy *string
	Order  *string
	Search *string
}

// Posts resolves Query.posts. Violations come back in the errors array
// instead of a status code, and unlike REST, bad sortBy or order values
// are rejected rather than defaulted.
func (r *Resolver) Posts(ctx context.Context, args PostsArgs) (*PostsResponseResolver, error) {
	page := int32Or(args.Page, 1)
	limit := int32Or(args.Limit, 10)
	sortBy := stringOr(args.SortBy, "created_at")
	order := stringOr(args.Order, "desc")

	if page < 1 {
		return nil, errPageTooSmall
	}
	if limit < 1 || limit > 100 {
		return nil, errBadLimit
	}
	if !sortFields[sortBy] {
		return nil, errBadSortBy
	}
	if !strings.EqualFold(order, "asc") && !strings.EqualFold(order, "desc") {
		return nil, errBadOrder
	}

	result, err := r.store.ListPosts(ctx, store.ListParams{
		Page:   page,
		Limit:  limit,
		SortBy: sortBy,
		Order:  order,
		Search: stringOr(args.Search, ""),
	})
	if err != nil {
		return nil, r.internal(err)
	}

	return &PostsResponseResolver{result: result, root: r}, nil
}

// User resolves Query.user; an unknown id yields null, not an error.
func (r *Resolver) User(ctx context.Context, args struct{ ID int32 }) (*UserResolver, error) {
	user, err := r.store.GetUser(ctx, int64(args.ID))
	if errors.Is(err, db.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.internal(err)
	}
	return &UserResolver{user: *user, root: r}, nil
}

// Users resolves Query.users.
func (r *Resolver) Users(ctx context.Context) ([]*UserResolver, error) {
	users, err := r.store.ListUsers(ctx)
	if err != nil {
		return nil, r.internal(err)
	}

	resolvers := make([]*UserResolver, len(users))
	for i, u := range users {
		resolvers[i] = &UserResolver{user: u, root: r}
	}
	return resolvers, nil
}

// UserResolver adapts a model.User to the GraphQL User type.
type UserResolver struct {
	user model.User
	root *Resolver
}

func (u *UserResolver) ID() int32     { return int32(u.user.ID) }
func (u *UserResolver) Name() string  { return u.user.Name }
func (u *UserResolver) Email() string { return u.user.Email }

// Posts resolves User.posts, fetching the user's recent posts on demand.
func (u *UserResolver) Posts(ctx context.Context, args struct{ Limit *int32 }) ([]*PostResolver, error) {
	limit := int32Or(args.Limit, store.DefaultUserPostsLimit)
	if limit < 1 || limit > 100 {
		return nil, errBadLimit
	}

	posts, err := u.root.store.UserPosts(ctx, u.user.ID, limit)
	if err != nil {
		return nil, u.root.internal(err)
	}

	resolvers := make([]*PostResolver, len(posts))
	for i, p := range posts {
		resolvers[i] = &PostResolver{post: p, root: u.root}
	}
	return resolvers, nil
}

// PostResolver adapts a model.Post to the GraphQL Post type.
type PostResolver struct {
	post model.Post
	root *Resolver
}

func (p *PostResolver) ID() int32       { return int32(p.post.ID) }
func (p *PostResolver) Title() string   { return p.post.Title }
func (p *PostResolver) Content() string { return p.post.Content }
func (p *PostResolver) AuthorID() int32 { return int32(p.post.AuthorID) }

func (p *PostResolver) CreatedAt() string {
	return p.post.CreatedAt.Format(time.RFC3339)
}

// Author resolves Post.author by fetching the owning user. A dangling
// author reference resolves to null rather than failing the query.
func (p *PostResolver) Author(ctx context.Context) (*UserResolver, error) {
	if p.post.Author != nil {
		return &UserResolver{user: *p.post.Author, root: p.root}, nil
	}

	user, err := p.root.store.GetUser(ctx, p.post.AuthorID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, p.root.internal(err)
	}
	return &UserResolver{user: *user, root: p.root}, nil
}

// PostsResponseResolver wraps one page of posts with pagination metadata.
type PostsResponseResolver struct {
	result *model.Paginated[model.Post]
	root   *Resolver
}

func (pr *PostsResponseResolver) Data() []*PostResolver {
	resolvers := make([]*PostResolver, len(pr.result.Data))
	for i, p := range pr.result.Data {
		resolvers[i] = &PostResolver{post: p, root: pr.root}
	}
	return resolvers
}

func (pr *PostsResponseResolver) Pagination() *PaginationResolver {
	return &PaginationResolver{meta: pr.result.Pagination}
}

// PaginationResolver adapts model.Pagination to the PaginationInfo type.
type PaginationResolver struct {
	meta model.Pagination
}

func (p *PaginationResolver) Page() int32       { return int32(p.meta.Page) }
func (p *PaginationResolver) Limit() int32      { return int32(p.meta.Limit) }
func (p *PaginationResolver) Total() int32      { return int32(p.meta.Total) }
func (p *PaginationResolver) TotalPages() int32 { return int32(p.meta.TotalPages) }

func int32Or(v *int32, def int) int {
	if v == nil {
		return def
	}
	return int(*v)
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
