package metadata

import (
	"errors"
	"sort"

	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// Field names in the order problems are reported.
const (
	FieldTitle   = "title"
	FieldDate    = "date"
	FieldTags    = "tags"
	FieldSummary = "summary"
	FieldSlug    = "slug"
	FieldDraft   = "draft"
)

var fieldOrder = map[string]int{
	FieldTitle:   0,
	FieldDate:    1,
	FieldTags:    2,
	FieldSummary: 3,
	FieldSlug:    4,
	FieldDraft:   5,
}

// ValidationResult collects field problems for a single post.
// At most one problem is kept per field; the first one recorded wins.
type ValidationResult struct {
	filePath string
	issues   []*blogsmith.ValidationError
}

func newResult(filePath string) *ValidationResult {
	return &ValidationResult{filePath: filePath}
}

// AddError records a problem with field unless one is already recorded.
func (v *ValidationResult) AddError(field, message, hint string) {
	if v.Has(field) {
		return
	}
	v.issues = append(v.issues, &blogsmith.ValidationError{
		FilePath: v.filePath,
		Field:    field,
		Message:  message,
		Hint:     hint,
	})
}

// Has reports whether field already has a recorded problem.
func (v *ValidationResult) Has(field string) bool {
	for _, issue := range v.issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

// Err joins the recorded problems in field order, or returns nil.
func (v *ValidationResult) Err() error {
	if len(v.issues) == 0 {
		return nil
	}
	sort.SliceStable(v.issues, func(i, j int) bool {
		return fieldOrder[v.issues[i].Field] < fieldOrder[v.issues[j].Field]
	})
	errs := make([]error, len(v.issues))
	for i, issue := range v.issues {
		errs[i] = issue
	}
	return errors.Join(errs...)
}
