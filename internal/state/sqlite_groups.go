package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/leapstack-labs/leapcube/pkg/annotation"
	"github.com/leapstack-labs/leapcube/pkg/core"
)

// ListGroups returns every stored group, ordered by name.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]GroupInfo, error) {
	if err := s.opened(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, shared, description, annotation_count, created_at, updated_at
		FROM annotation_groups
		ORDER BY name`)
	if err != nil {
		return nil, core.WrapError(core.KindDataAccess, err, "failed to list annotation groups")
	}
	defer func() { _ = rows.Close() }()

	var groups []GroupInfo
	for rows.Next() {
		var g GroupInfo
		if err := rows.Scan(&g.ID, &g.Name, &g.Shared, &g.Description, &g.Annotations, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, core.WrapError(core.KindDataAccess, err, "failed to scan annotation group")
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, core.WrapError(core.KindDataAccess, err, "error iterating annotation groups")
	}
	return groups, nil
}

// GetGroup reads a group by name. Unknown names return ErrGroupNotFound.
func (s *SQLiteStore) GetGroup(ctx context.Context, name string) (*annotation.Group, error) {
	if err := s.opened(); err != nil {
		return nil, err
	}

	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM annotation_groups WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, name)
	}
	if err != nil {
		return nil, core.WrapError(core.KindDataAccess, err, "failed to read annotation group %s", name)
	}

	var g annotation.Group
	if err := json.Unmarshal([]byte(body), &g); err != nil {
		return nil, core.WrapError(core.KindDataAccess, err, "annotation group %s is corrupt", name)
	}
	return &g, nil
}

// SaveGroup inserts g, or replaces the stored group of the same name.
func (s *SQLiteStore) SaveGroup(ctx context.Context, g *annotation.Group) (*GroupInfo, error) {
	if err := s.opened(); err != nil {
		return nil, err
	}
	if g == nil || g.Name == "" {
		return nil, core.Errorf(core.KindValidation, "annotation group name is required")
	}

	body, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to encode annotation group %s: %w", g.Name, err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO annotation_groups (id, name, shared, description, body, annotation_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			shared = excluded.shared,
			description = excluded.description,
			body = excluded.body,
			annotation_count = excluded.annotation_count,
			updated_at = excluded.updated_at`,
		generateID(), g.Name, g.Shared, g.Description, string(body), len(g.Annotations), now, now,
	)
	if err != nil {
		return nil, core.WrapError(core.KindDataAccess, err, "failed to save annotation group %s", g.Name)
	}

	info := &GroupInfo{}
	err = s.db.QueryRowContext(ctx, `
		SELECT id, name, shared, description, annotation_count, created_at, updated_at
		FROM annotation_groups WHERE name = ?`, g.Name,
	).Scan(&info.ID, &info.Name, &info.Shared, &info.Description, &info.Annotations, &info.CreatedAt, &info.UpdatedAt)
	if err != nil {
		return nil, core.WrapError(core.KindDataAccess, err, "failed to read back annotation group %s", g.Name)
	}

	s.logger.Debug("annotation group saved", "name", g.Name, "shared", g.Shared, "annotations", len(g.Annotations))
	return info, nil
}

// DeleteGroup removes a group by name. Unknown names return ErrGroupNotFound.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, name string) error {
	if err := s.opened(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM annotation_groups WHERE name = ?`, name)
	if err != nil {
		return core.WrapError(core.KindDataAccess, err, "failed to delete annotation group %s", name)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.WrapError(core.KindDataAccess, err, "failed to delete annotation group %s", name)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrGroupNotFound, name)
	}
	return nil
}
