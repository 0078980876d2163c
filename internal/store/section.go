// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"sectionpress/internal/models"
)

// SectionStore handles database operations on individual sections.
type SectionStore struct {
	db *sql.DB
}

// NewSectionStore creates a new SectionStore with the given database
// connection.
func NewSectionStore(db *sql.DB) *SectionStore {
	return &SectionStore{db: db}
}

// FindByID retrieves a single section. Returns nil if no section has the
// given id.
func (s *SectionStore) FindByID(id int64) (*models.Section, error) {
	sec := &models.Section{}
	err := s.db.QueryRow(`
		SELECT id, post_id, type, title, content, metadata, position, created_at, updated_at
		FROM sections WHERE id = $1
	`, id).Scan(
		&sec.ID, &sec.PostID, &sec.Type, &sec.Title, &sec.Content,
		&sec.Metadata, &sec.Order, &sec.CreatedAt, &sec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find section by id: %w", err)
	}
	return sec, nil
}

// ListByPost returns a post's sections ascending by display order, ties
// broken by id.
func (s *SectionStore) ListByPost(postID int64) ([]models.Section, error) {
	rows, err := s.db.Query(`
		SELECT id, post_id, type, title, content, metadata, position, created_at, updated_at
		FROM sections
		WHERE post_id = $1
		ORDER BY position, id
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list sections by post: %w", err)
	}
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		var sec models.Section
		if err := rows.Scan(
			&sec.ID, &sec.PostID, &sec.Type, &sec.Title, &sec.Content,
			&sec.Metadata, &sec.Order, &sec.CreatedAt, &sec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

// Update rewrites a section's content fields and refreshes updated_at,
// returning the stored row. The owning post cannot be changed. Returns nil
// if no section has the given id.
func (s *SectionStore) Update(sec *models.Section) (*models.Section, error) {
	out := &models.Section{}
	err := s.db.QueryRow(`
		UPDATE sections SET
			type = $1, title = $2, content = $3, metadata = $4, position = $5,
			updated_at = now()
		WHERE id = $6
		RETURNING id, post_id, type, title, content, metadata, position, created_at, updated_at
	`, sec.Type, sec.Title, sec.Content, sec.Metadata, sec.Order, sec.ID).Scan(
		&out.ID, &out.PostID, &out.Type, &out.Title, &out.Content,
		&out.Metadata, &out.Order, &out.CreatedAt, &out.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update section: %w", err)
	}
	return out, nil
}

// Delete removes a section by id. Reports whether a section was deleted.
func (s *SectionStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete section: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete section rows affected: %w", err)
	}
	return affected > 0, nil
}
