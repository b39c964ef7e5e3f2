// Package engine derives supplier-facing status labels, filtered lists and
// orderings from framework, declaration and draft-service records.
//
// Everything here is a pure function of its arguments: no I/O, no shared
// state, and inputs are never mutated. Sorting is always stable so identical
// inputs give identical outputs.
package engine

import (
	"errors"
	"fmt"

	"supplierfront/internal/domain"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateSlug    = errors.New("duplicate framework slug")
	ErrQuestionNotFound = errors.New("question not found")
)

// LookupError reports which framework or lot could not be resolved.
// It matches ErrNotFound with errors.Is.
type LookupError struct {
	Kind   string
	Slug   string
	Status domain.FrameworkStatus
}

func (e *LookupError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s %s not found in status %s", e.Kind, e.Slug, e.Status)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.Slug)
}

func (e *LookupError) Unwrap() error { return ErrNotFound }

func notFound(kind, slug string) error {
	return &LookupError{Kind: kind, Slug: slug}
}
