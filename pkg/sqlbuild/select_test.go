package sqlbuild

import "testing"

func TestSelectBuilder_ToSQL(t *testing.T) {
	tests := []struct {
		name       string
		setupQuery func() *SelectBuilder
		wantSQL    string
		wantArgLen int
	}{
		{
			name: "simple select",
			setupQuery: func() *SelectBuilder {
				return Select("id", "name", "email").From("users")
			},
			wantSQL:    "SELECT id, name, email FROM users",
			wantArgLen: 0,
		},
		{
			name: "select with ORDER BY",
			setupQuery: func() *SelectBuilder {
				return Select("id").From("users").OrderBy("id", Asc)
			},
			wantSQL:    "SELECT id FROM users ORDER BY id ASC",
			wantArgLen: 0,
		},
		{
			name: "select with WHERE",
			setupQuery: func() *SelectBuilder {
				return Select("id").From("posts").Where("posts.id = ?", 7)
			},
			wantSQL:    "SELECT id FROM posts WHERE posts.id = $1",
			wantArgLen: 1,
		},
		{
			name: "multiple placeholders in one condition",
			setupQuery: func() *SelectBuilder {
				return Select("id").From("posts").
					Where("(posts.title ILIKE ? OR posts.content ILIKE ?)", "%go%", "%go%")
			},
			wantSQL:    "SELECT id FROM posts WHERE (posts.title ILIKE $1 OR posts.content ILIKE $2)",
			wantArgLen: 2,
		},
		{
			name: "conditions are ANDed with sequential params",
			setupQuery: func() *SelectBuilder {
				return Select("id").From("posts").
					Where("posts.author_id = ?", 1).
					Where("posts.title ILIKE ?", "%api%")
			},
			wantSQL:    "SELECT id FROM posts WHERE posts.author_id = $1 AND posts.title ILIKE $2",
			wantArgLen: 2,
		},
		{
			name: "join with order, limit and offset",
			setupQuery: func() *SelectBuilder {
				return Select("posts.id", "users.name").From("posts").
					Join("users", "posts.author_id = users.id").
					OrderBy("posts.created_at", Desc).
					Limit(5).
					Offset(10)
			},
			wantSQL: "SELECT posts.id, users.name FROM posts " +
				"JOIN users ON posts.author_id = users.id " +
				"ORDER BY posts.created_at DESC LIMIT 5 OFFSET 10",
			wantArgLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotArgs := tt.setupQuery().ToSQL()
			if gotSQL != tt.wantSQL {
				t.Errorf("ToSQL() = %q, want %q", gotSQL, tt.wantSQL)
			}
			if len(gotArgs) != tt.wantArgLen {
				t.Errorf("len(args) = %d, want %d", len(gotArgs), tt.wantArgLen)
			}
		})
	}
}

func TestSelectBuilder_CountSQL(t *testing.T) {
	b := Select("posts.id", "posts.title").From("posts").
		Join("users", "posts.author_id = users.id").
		Where("(posts.title ILIKE ? OR posts.content ILIKE ?)", "%sql%", "%sql%").
		OrderBy("posts.created_at", Desc).
		Limit(10).
		Offset(20)

	gotSQL, gotArgs := b.CountSQL()
	wantSQL := "SELECT COUNT(*) FROM posts " +
		"JOIN users ON posts.author_id = users.id " +
		"WHERE (posts.title ILIKE $1 OR posts.content ILIKE $2)"

	if gotSQL != wantSQL {
		t.Errorf("CountSQL() = %q, want %q", gotSQL, wantSQL)
	}
	if len(gotArgs) != 2 {
		t.Errorf("len(args) = %d, want 2", len(gotArgs))
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"asc", Asc},
		{"ASC", Asc},
		{"Asc", Asc},
		{"desc", Desc},
		{"DESC", Desc},
		{"", Desc},
		{"sideways", Desc},
	}

	for _, tt := range tests {
		if got := ParseDirection(tt.in); got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
