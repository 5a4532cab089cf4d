// Package state persists annotation groups, most importantly published shared
// dimensions, in a SQLite metastore.
//
// Groups are keyed by name. Saving a group that already exists replaces it
// (last write wins); no locking is done across processes.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/leapstack-labs/leapcube/pkg/annotation"
)

// ErrGroupNotFound is returned when no group has the requested name.
var ErrGroupNotFound = errors.New("annotation group not found")

// GroupInfo summarizes a stored group.
type GroupInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Shared      bool      `json:"shared"`
	Description string    `json:"description,omitempty"`
	Annotations int       `json:"annotations"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Store is the metastore contract used by the modeler and its surfaces.
type Store interface {
	ListGroups(ctx context.Context) ([]GroupInfo, error)
	GetGroup(ctx context.Context, name string) (*annotation.Group, error)
	SaveGroup(ctx context.Context, g *annotation.Group) (*GroupInfo, error)
	DeleteGroup(ctx context.Context, name string) error
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
