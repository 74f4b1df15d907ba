// ABOUTME: SQL-backed entity sources for built-in ajax select callbacks.
// ABOUTME: One configurable query shape covers posts, terms, and users.

package sources

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/2389/flyout"
)

// SQL implements flyout.EntitySource over a database table. Table and column
// names come from trusted configuration, never from request input. A query
// matches labels case-insensitively on a substring; a non-empty subtype
// narrows the search via SubtypeColumn.
type SQL struct {
	DB            *sql.DB
	Table         string
	IDColumn      string
	LabelColumn   string
	SubtypeColumn string
}

// Posts returns a source over the demo store's posts table, narrowed by
// post type.
func Posts(db *sql.DB) *SQL {
	return &SQL{DB: db, Table: "posts", IDColumn: "id", LabelColumn: "title", SubtypeColumn: "post_type"}
}

// Terms returns a source over the demo store's terms table, narrowed by
// taxonomy.
func Terms(db *sql.DB) *SQL {
	return &SQL{DB: db, Table: "terms", IDColumn: "id", LabelColumn: "name", SubtypeColumn: "taxonomy"}
}

// Users returns a source over the demo store's users table, narrowed by
// role.
func Users(db *sql.DB) *SQL {
	return &SQL{DB: db, Table: "users", IDColumn: "id", LabelColumn: "display_name", SubtypeColumn: "role"}
}

// Search returns up to limit options whose label contains the query,
// ordered by label.
func (s *SQL) Search(ctx context.Context, subtype, query string, limit int) ([]flyout.Option, error) {
	if limit <= 0 {
		limit = flyout.DefaultPageSize
	}

	q := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s LIKE ?", s.IDColumn, s.LabelColumn, s.Table, s.LabelColumn)
	args := []any{"%" + query + "%"}
	if subtype != "" {
		q += fmt.Sprintf(" AND %s = ?", s.SubtypeColumn)
		args = append(args, subtype)
	}
	q += fmt.Sprintf(" ORDER BY %s LIMIT ?", s.LabelColumn)
	args = append(args, limit)

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.Table, err)
	}
	defer rows.Close()

	return scanOptions(rows)
}

// Resolve returns a label for each id it can find, in request order. Unknown
// ids are omitted.
func (s *SQL) Resolve(ctx context.Context, subtype string, ids []string) ([]flyout.Option, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	q := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s IN (%s)",
		s.IDColumn, s.LabelColumn, s.Table, s.IDColumn, placeholders)
	args := make([]any, 0, len(ids)+1)
	for _, id := range ids {
		args = append(args, id)
	}
	if subtype != "" {
		q += fmt.Sprintf(" AND %s = ?", s.SubtypeColumn)
		args = append(args, subtype)
	}

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", s.Table, err)
	}
	defer rows.Close()

	found, err := scanOptions(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]string, len(found))
	for _, o := range found {
		byID[o.Value] = o.Label
	}
	opts := make([]flyout.Option, 0, len(found))
	for _, id := range ids {
		if label, ok := byID[id]; ok {
			opts = append(opts, flyout.Option{Value: id, Label: label})
		}
	}
	return opts, nil
}

func scanOptions(rows *sql.Rows) ([]flyout.Option, error) {
	var opts []flyout.Option
	for rows.Next() {
		var o flyout.Option
		if err := rows.Scan(&o.Value, &o.Label); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}
