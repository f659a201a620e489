// Package state records parse history in SQLite.
package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeebo/xxh3"
)

// ErrRunNotFound is returned when no run matches a lookup.
var ErrRunNotFound = errors.New("parse run not found")

// ParseRun is one recorded parse of a DDL document.
type ParseRun struct {
	ID          string    `json:"id" yaml:"id"`
	Source      string    `json:"source" yaml:"source"`
	ContentHash string    `json:"contentHash" yaml:"contentHash"`
	ParserID    string    `json:"parserId" yaml:"parserId"`
	Success     bool      `json:"success" yaml:"success"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
	Statements  int       `json:"statements" yaml:"statements"`
	DurationMS  int64     `json:"durationMs" yaml:"durationMs"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// Store persists parse runs.
type Store interface {
	RecordRun(ctx context.Context, run *ParseRun) error
	GetRun(ctx context.Context, id string) (*ParseRun, error)
	LatestByHash(ctx context.Context, hash string) (*ParseRun, error)
	ListRuns(ctx context.Context, limit int) ([]*ParseRun, error)
	Close() error
}

// ContentHash returns the hex xxh3 digest of a document.
func ContentHash(content string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(content))
}
