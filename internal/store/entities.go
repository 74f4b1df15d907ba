// ABOUTME: Entity CRUD for the demo flyout server.
// ABOUTME: Posts, terms, and users feed search; entities hold form payloads.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type Post struct {
	ID       string
	Title    string
	PostType string
}

type Term struct {
	ID       string
	Name     string
	Taxonomy string
}

type User struct {
	ID          string
	DisplayName string
	Role        string
}

// CreatePost inserts a post, generating an id when none is set.
func (s *Store) CreatePost(p *Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO posts (id, title, post_type) VALUES (?, ?, ?)`,
		p.ID, p.Title, p.PostType)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// CreateTerm inserts a term, generating an id when none is set.
func (s *Store) CreateTerm(t *Term) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO terms (id, name, taxonomy) VALUES (?, ?, ?)`,
		t.ID, t.Name, t.Taxonomy)
	if err != nil {
		return fmt.Errorf("create term: %w", err)
	}
	return nil
}

// CreateUser inserts a user, generating an id when none is set.
func (s *Store) CreateUser(u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO users (id, display_name, role) VALUES (?, ?, ?)`,
		u.ID, u.DisplayName, u.Role)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// LoadEntity returns the stored form payload for id.
func (s *Store) LoadEntity(id string) (map[string]any, error) {
	var raw string
	err := s.db.QueryRow(`SELECT data FROM entities WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("entity %q not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load entity %q: %w", id, err)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode entity %q: %w", id, err)
	}
	return data, nil
}

// SaveEntity upserts the form payload for id.
func (s *Store) SaveEntity(id string, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode entity %q: %w", id, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO entities (id, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, id, string(raw))
	if err != nil {
		return fmt.Errorf("save entity %q: %w", id, err)
	}
	return nil
}

// DeleteEntity removes the form payload for id.
func (s *Store) DeleteEntity(id string) error {
	res, err := s.db.Exec(`DELETE FROM entities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entity %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entity %q not found", id)
	}
	return nil
}

// CountPosts reports how many posts exist, used to skip duplicate seeding.
func (s *Store) CountPosts() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}
