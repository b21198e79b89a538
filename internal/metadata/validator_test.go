package metadata

import (
	"errors"
	"testing"
	"time"

	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() map[string]any {
	return map[string]any{
		"title":   "Hello",
		"date":    "2025-05-01",
		"tags":    []any{"go", "homelab"},
		"summary": "First post",
		"slug":    "hello",
	}
}

func TestValidate_Valid(t *testing.T) {
	meta, err := Validate(validRaw(), "posts/hello.md")
	require.NoError(t, err)

	assert.Equal(t, "Hello", meta.Title)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), meta.Date)
	assert.Equal(t, []string{"go", "homelab"}, meta.Tags)
	assert.Equal(t, "First post", meta.Summary)
	assert.Equal(t, "hello", meta.Slug)
	assert.False(t, meta.Draft)
}

func TestValidate_Defaults(t *testing.T) {
	raw := validRaw()
	delete(raw, "tags")
	raw["extra"] = "ignored"

	meta, err := Validate(raw, "posts/hello.md")
	require.NoError(t, err)
	assert.NotNil(t, meta.Tags)
	assert.Empty(t, meta.Tags)
}

func TestValidate_Draft(t *testing.T) {
	raw := validRaw()
	raw["draft"] = true

	meta, err := Validate(raw, "posts/hello.md")
	require.NoError(t, err)
	assert.True(t, meta.Draft)
}

func TestValidate_UnquotedTimestamp(t *testing.T) {
	raw := validRaw()
	raw["date"] = time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)

	meta, err := Validate(raw, "posts/hello.md")
	require.NoError(t, err)
	assert.Equal(t, 11, meta.Date.Day())
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(map[string]any)
		wantField string
		wantMsg   string
	}{
		{"missing title", func(m map[string]any) { delete(m, "title") }, "title", "is required"},
		{"blank title", func(m map[string]any) { m["title"] = "   " }, "title", "must not be blank"},
		{"numeric title", func(m map[string]any) { m["title"] = 2025 }, "title", "must be a string"},
		{"missing date", func(m map[string]any) { delete(m, "date") }, "date", "is required"},
		{"null date", func(m map[string]any) { m["date"] = nil }, "date", "is required"},
		{"wrong date format", func(m map[string]any) { m["date"] = "01/05/2025" }, "date", "YYYY-MM-DD"},
		{"single digit month", func(m map[string]any) { m["date"] = "2025-5-01" }, "date", "YYYY-MM-DD"},
		{"impossible date", func(m map[string]any) { m["date"] = "2025-02-30" }, "date", "not a valid calendar date"},
		{"date with time", func(m map[string]any) { m["date"] = "2025-05-01T10:00:00Z" }, "date", "YYYY-MM-DD"},
		{"timestamp with clock", func(m map[string]any) { m["date"] = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC) }, "date", "without a time"},
		{"numeric date", func(m map[string]any) { m["date"] = 20250501 }, "date", "got a number"},
		{"tags as string", func(m map[string]any) { m["tags"] = "go" }, "tags", "must be a list"},
		{"tags with number", func(m map[string]any) { m["tags"] = []any{"go", 7} }, "tags", "entry 2 must be a string"},
		{"tags with blank", func(m map[string]any) { m["tags"] = []any{"go", " "} }, "tags", "blank entries"},
		{"missing summary", func(m map[string]any) { delete(m, "summary") }, "summary", "is required"},
		{"missing slug", func(m map[string]any) { delete(m, "slug") }, "slug", "is required"},
		{"slug with slash", func(m map[string]any) { m["slug"] = "a/b" }, "slug", "must start with a letter or digit"},
		{"slug with space", func(m map[string]any) { m["slug"] = "my post" }, "slug", "must start with a letter or digit"},
		{"slug starting with dot", func(m map[string]any) { m["slug"] = ".hidden" }, "slug", "must start with a letter or digit"},
		{"draft as string", func(m map[string]any) { m["draft"] = "yes" }, "draft", "must be true or false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(raw)

			_, err := Validate(raw, "posts/bad.md")
			require.Error(t, err)

			var ve *blogsmith.ValidationError
			require.True(t, errors.As(err, &ve), "want *ValidationError, got %T", err)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, "posts/bad.md", ve.FilePath)
			assert.Contains(t, ve.Message, tt.wantMsg)
			assert.NotEmpty(t, ve.Hint)
			assert.Equal(t, []string{tt.wantField}, blogsmith.ValidationFields(err))
		})
	}
}

func TestValidate_ReportsAllFieldsInOrder(t *testing.T) {
	_, err := Validate(map[string]any{"slug": "bad slug", "tags": "x"}, "posts/empty.md")
	require.Error(t, err)

	assert.Equal(t, []string{"title", "date", "tags", "summary", "slug"}, blogsmith.ValidationFields(err))
	assert.Equal(t, blogsmith.ExitValidation, blogsmith.ExitCodeForError(err))
}

func TestValidate_ReturnsZeroMetadataOnError(t *testing.T) {
	raw := validRaw()
	delete(raw, "date")

	meta, err := Validate(raw, "posts/hello.md")
	require.Error(t, err)
	assert.Equal(t, blogsmith.PostMetadata{}, meta)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, time.UTC, d.Location())

	_, err = ParseDate("2023-02-29")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid calendar date")

	for _, s := range []string{"2024-02-29T00:00:00Z", "2024-02-29 10:00", "2024-02-29T10:00:00+02:00"} {
		_, err := ParseDate(s)
		assert.Error(t, err, "ParseDate(%q) should reject a time of day", s)
	}
}
