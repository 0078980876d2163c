// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"sectionpress/internal/database"
	"sectionpress/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "sectionpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "sectionpress")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

// testDB connects to the test database and runs migrations, skipping the
// test when PostgreSQL is unavailable.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(testDSN())
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	return db
}

// uniqueTitle returns a title no other test run will have used, so slug
// resolution starts from a clean base.
func uniqueTitle(t *testing.T, prefix string) string {
	t.Helper()
	return prefix + " " + uuid.NewString()
}

// createTestPost inserts a post with the given sections and registers a
// cleanup that removes it.
func createTestPost(t *testing.T, ps *PostStore, title, slug string, sections []models.Section) *models.Post {
	t.Helper()

	post, err := ps.Create(&models.Post{Title: title, Slug: slug}, sections)
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	t.Cleanup(func() { ps.Delete(post.ID) })
	return post
}

func strPtr(s string) *string { return &s }
