package services

import (
	"errors"
	"fmt"

	"github.com/codyseavey/sportscard-tracker/internal/database"
)

// ErrorKind classifies per-item failures so batch callers can report them
// without inspecting error chains.
type ErrorKind string

const (
	// ErrKindSource covers unreachable or malformed price-source responses,
	// surfaced after the bounded retry policy is exhausted.
	ErrKindSource ErrorKind = "source"
	// ErrKindValidation covers bad caller input: missing identifiers or
	// references to cards/lots that do not exist.
	ErrKindValidation ErrorKind = "validation"
	// ErrKindDomain covers rejected operations such as double sales.
	ErrKindDomain ErrorKind = "domain"
	// ErrKindStore covers persistence failures.
	ErrKindStore ErrorKind = "store"
)

// ErrMissingQuery is returned when a source lookup has neither a product ID
// nor a search query.
var ErrMissingQuery = errors.New("either a product id or a search query is required")

// SourceError wraps a price-source failure after retries are exhausted.
type SourceError struct {
	Op  string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("price source %s: %v", e.Op, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ClassifyError maps an error to its ErrorKind.
func ClassifyError(err error) ErrorKind {
	var srcErr *SourceError
	switch {
	case errors.As(err, &srcErr):
		return ErrKindSource
	case errors.Is(err, ErrMissingQuery), errors.Is(err, database.ErrNotFound):
		return ErrKindValidation
	case errors.Is(err, database.ErrAlreadySold):
		return ErrKindDomain
	default:
		return ErrKindStore
	}
}
