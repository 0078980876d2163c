// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the database access layer for posts and sections.
// Stores receive their *sql.DB through the constructor; there is no
// package-level connection state.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"sectionpress/internal/models"
)

// ErrSlugTaken is returned when an insert or update hits the UNIQUE
// constraint on posts.slug. The slug pre-check is not atomic with the
// write, so concurrent creations with the same title can race; the
// constraint is the authoritative guard and callers re-resolve and retry
// on this error.
var ErrSlugTaken = errors.New("slug already taken by another post")

// PostStore handles all post-related database operations, including the
// ordered section collections owned by each post.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// List returns all posts as summaries (no sections), newest first.
func (s *PostStore) List() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT id, title, slug, excerpt, author, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Author,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// FindByID retrieves a post and its sections, sections ascending by order.
// Returns nil if no post has the given id.
func (s *PostStore) FindByID(id int64) (*models.Post, error) {
	p := &models.Post{}
	err := s.db.QueryRow(`
		SELECT id, title, slug, excerpt, author, created_at, updated_at
		FROM posts WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Author,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}

	if p.Sections, err = s.sectionsForPost(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// FindBySlug retrieves a post and its sections by slug. Returns nil if no
// post has the given slug.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	p := &models.Post{}
	err := s.db.QueryRow(`
		SELECT id, title, slug, excerpt, author, created_at, updated_at
		FROM posts WHERE slug = $1
	`, slug).Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Author,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}

	if p.Sections, err = s.sectionsForPost(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// SlugExists reports whether a post other than excludeID already holds the
// slug. Pass excludeID 0 to check against all posts. Satisfies slug.Checker.
func (s *PostStore) SlugExists(slug string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)
	`, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a post and its sections in a single transaction and
// returns the stored post with sections in display order. Section Order
// values must already be assigned by the caller. Returns ErrSlugTaken when
// the slug UNIQUE constraint rejects the insert.
func (s *PostStore) Create(p *models.Post, sections []models.Section) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create post begin: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(`
		INSERT INTO posts (title, slug, excerpt, author)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.Title, p.Slug, p.Excerpt, p.Author).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := insertSections(tx, id, sections); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create post commit: %w", err)
	}
	return s.FindByID(id)
}

// Update rewrites a post's fields and refreshes updated_at. When
// replaceSections is true the post's entire section collection is replaced
// inside the same transaction: all existing rows are deleted and the given
// list is inserted, assigning fresh section ids. Returns nil if no post has
// the given id, and ErrSlugTaken on a slug conflict.
func (s *PostStore) Update(p *models.Post, sections []models.Section, replaceSections bool) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("update post begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE posts SET
			title = $1, slug = $2, excerpt = $3, author = $4,
			updated_at = now()
		WHERE id = $5
	`, p.Title, p.Slug, p.Excerpt, p.Author, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update post rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	if replaceSections {
		if _, err := tx.Exec(`DELETE FROM sections WHERE post_id = $1`, p.ID); err != nil {
			return nil, fmt.Errorf("replace sections delete: %w", err)
		}
		if err := insertSections(tx, p.ID, sections); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update post commit: %w", err)
	}
	return s.FindByID(p.ID)
}

// Delete removes a post by id. Sections are removed by the ON DELETE
// CASCADE on sections.post_id. Reports whether a post was deleted.
func (s *PostStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete post rows affected: %w", err)
	}
	return affected > 0, nil
}

// sectionsForPost loads a post's sections ascending by display order,
// breaking ties by id so repeated reads return a stable sequence.
func (s *PostStore) sectionsForPost(postID int64) ([]models.Section, error) {
	rows, err := s.db.Query(`
		SELECT id, post_id, type, title, content, metadata, position, created_at, updated_at
		FROM sections
		WHERE post_id = $1
		ORDER BY position, id
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
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

// insertSections inserts a post's sections within the given transaction.
func insertSections(tx *sql.Tx, postID int64, sections []models.Section) error {
	for i, sec := range sections {
		_, err := tx.Exec(`
			INSERT INTO sections (post_id, type, title, content, metadata, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, postID, sec.Type, sec.Title, sec.Content, sec.Metadata, sec.Order)
		if err != nil {
			return fmt.Errorf("insert section %d: %w", i, err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
