package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: a single
// welcome post demonstrating every section type. It is a no-op when any
// posts already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return fmt.Errorf("seed check posts: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	var postID int64
	err = tx.QueryRow(`
		INSERT INTO posts (title, slug, excerpt, author)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "Welcome to SectionPress", "welcome-to-sectionpress",
		"A short tour of the section types this blog supports.", "SectionPress",
	).Scan(&postID)
	if err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	sections := []struct {
		typ      string
		title    *string
		content  string
		metadata *string
	}{
		{
			typ:     "text",
			content: "Posts are built from **ordered sections**. Each section has a type that controls how it renders.",
		},
		{
			typ:     "html",
			content: `<p>This block is <em>raw HTML</em>, passed through untouched.</p>`,
		},
		{
			typ:      "code",
			content:  "func main() {\n\tfmt.Println(\"hello from a code section\")\n}",
			metadata: ptr(`{"language": "go"}`),
		},
		{
			typ:      "image",
			content:  "https://placehold.co/960x540",
			metadata: ptr(`{"alt": "Placeholder image"}`),
		},
		{
			typ:     "video",
			content: "https://example.com/media/intro.mp4",
		},
	}

	for i, s := range sections {
		_, err := tx.Exec(`
			INSERT INTO sections (post_id, type, title, content, metadata, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, postID, s.typ, s.title, s.content, s.metadata, i)
		if err != nil {
			return fmt.Errorf("seed insert section %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with welcome post", "slug", "welcome-to-sectionpress")
	return nil
}

func ptr(s string) *string { return &s }
