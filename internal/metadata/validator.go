package metadata

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// structValidator returns the shared validator with the notblank and slug rules registered.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			return strings.ToLower(fld.Name)
		})
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Validate converts a decoded frontmatter mapping into PostMetadata.
//
// Required fields are title, date, summary and slug. tags defaults to an empty
// list and draft to false; unknown keys are ignored. Every offending field is
// reported as a *blogsmith.ValidationError, joined in field order.
func Validate(raw map[string]any, filePath string) (blogsmith.PostMetadata, error) {
	result := newResult(filePath)
	meta := blogsmith.PostMetadata{Tags: []string{}}

	meta.Title = coerceString(raw, FieldTitle, result, `title: "My first post"`)
	meta.Date = coerceDate(raw, result)
	meta.Tags = coerceTags(raw, result)
	meta.Summary = coerceString(raw, FieldSummary, result, `summary: "One sentence shown on the index and in the feed"`)
	meta.Slug = coerceString(raw, FieldSlug, result, `slug: "my-first-post"`)
	meta.Draft = coerceBool(raw, FieldDraft, result)

	checkStruct(&meta, result)

	if err := result.Err(); err != nil {
		return blogsmith.PostMetadata{}, err
	}
	return meta, nil
}

func coerceString(raw map[string]any, field string, result *ValidationResult, example string) string {
	value, ok := raw[field]
	if !ok || value == nil {
		result.AddError(field, "is required", "Add "+example+" to the frontmatter")
		return ""
	}
	s, ok := value.(string)
	if !ok {
		result.AddError(field, fmt.Sprintf("must be a string, got %s", describe(value)),
			"Wrap the value in double quotes, e.g. "+example)
		return ""
	}
	return s
}

func coerceDate(raw map[string]any, result *ValidationResult) time.Time {
	const hint = `Use the form date: "2025-05-01"`

	value, ok := raw[FieldDate]
	if !ok || value == nil {
		result.AddError(FieldDate, "is required", hint)
		return time.Time{}
	}

	switch v := value.(type) {
	case string:
		d, err := ParseDate(v)
		if err != nil {
			result.AddError(FieldDate, err.Error(), hint)
			return time.Time{}
		}
		return d
	case time.Time:
		if v.Hour() != 0 || v.Minute() != 0 || v.Second() != 0 || v.Nanosecond() != 0 {
			result.AddError(FieldDate, "must be a calendar date without a time of day", hint)
			return time.Time{}
		}
		return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
	default:
		result.AddError(FieldDate, fmt.Sprintf("must be a YYYY-MM-DD string, got %s", describe(value)), hint)
		return time.Time{}
	}
}

// ParseDate parses a YYYY-MM-DD calendar date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(blogsmith.DateLayout, s)
	if err != nil {
		var pe *time.ParseError
		if errors.As(err, &pe) && strings.Contains(pe.Message, "out of range") {
			// Shape was right but a component is out of range, e.g. 2025-02-30.
			return time.Time{}, fmt.Errorf("%q is not a valid calendar date", s)
		}
		return time.Time{}, fmt.Errorf("%q is not a date in YYYY-MM-DD form", s)
	}
	return d, nil
}

func coerceTags(raw map[string]any, result *ValidationResult) []string {
	const hint = `Write tags as a list, e.g. tags: ["go", "homelab"]`

	value, ok := raw[FieldTags]
	if !ok || value == nil {
		return []string{}
	}

	list, ok := value.([]any)
	if !ok {
		result.AddError(FieldTags, fmt.Sprintf("must be a list of strings, got %s", describe(value)), hint)
		return []string{}
	}

	tags := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			result.AddError(FieldTags, fmt.Sprintf("entry %d must be a string, got %s", i+1, describe(item)), hint)
			return []string{}
		}
		tags = append(tags, s)
	}
	return tags
}

func coerceBool(raw map[string]any, field string, result *ValidationResult) bool {
	value, ok := raw[field]
	if !ok || value == nil {
		return false
	}
	b, ok := value.(bool)
	if !ok {
		result.AddError(field, fmt.Sprintf("must be true or false, got %s", describe(value)), "Write draft: true or remove the line")
		return false
	}
	return b
}

// checkStruct runs the declarative rules on PostMetadata. Fields that already
// failed coercion are skipped so each field reports its root cause only.
func checkStruct(meta *blogsmith.PostMetadata, result *ValidationResult) {
	err := structValidator().Struct(meta)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.AddError("frontmatter", err.Error(), "")
		return
	}

	for _, fe := range fieldErrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if result.Has(field) {
			continue
		}
		result.AddError(field, translateError(fe), hintFor(field))
	}
}

func translateError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		if strings.HasPrefix(fe.Field(), FieldTags+"[") {
			return "must not contain blank entries"
		}
		return "must not be blank"
	case "slug":
		return fmt.Sprintf("%q must start with a letter or digit and contain only letters, digits, '.', '_' or '-'", fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func hintFor(field string) string {
	switch field {
	case FieldSlug:
		return "The slug names the page file, e.g. slug: \"my-first-post\""
	case FieldTags:
		return "Remove empty entries from the tags list"
	default:
		return "Give " + field + " a non-empty value"
	}
}

func describe(v any) string {
	switch v.(type) {
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int, int64, uint64, float64:
		return "a number"
	case []any:
		return "a list"
	case map[string]any:
		return "a mapping"
	case time.Time:
		return "a timestamp"
	default:
		return fmt.Sprintf("%T", v)
	}
}
