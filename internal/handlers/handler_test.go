// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"sectionpress/internal/database"
	"sectionpress/internal/render"
	"sectionpress/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "sectionpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "sectionpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := database.Connect(dsn)
	if err != nil {
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB       *sql.DB
	Posts    *store.PostStore
	Sections *store.SectionStore
	API      *API
	Public   *Public
	Router   chi.Router
}

// newTestEnv creates a complete test environment: stores, handlers, and a
// router mirroring the production route table.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	posts := store.NewPostStore(db)
	sections := store.NewSectionStore(db)
	api := NewAPI(posts, sections)
	public := NewPublic(posts, renderer)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", api.ListPosts)
			r.Post("/", api.CreatePost)
			r.Get("/slug/{slug}", api.GetPostBySlug)
			r.Get("/{id}", api.GetPost)
			r.Put("/{id}", api.UpdatePost)
			r.Delete("/{id}", api.DeletePost)
		})
		r.Route("/sections", func(r chi.Router) {
			r.Get("/{id}", api.GetSection)
			r.Put("/{id}", api.UpdateSection)
			r.Delete("/{id}", api.DeleteSection)
		})
	})
	r.Get("/", public.Home)
	r.Get("/blog", public.Home)
	r.Get("/blog/{slug}", public.Post)

	return &testEnv{
		DB:       db,
		Posts:    posts,
		Sections: sections,
		API:      api,
		Public:   public,
		Router:   r,
	}
}

// do runs a request through the test router, marshaling body as JSON when
// non-nil.
func (env *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	env.Router.ServeHTTP(rr, req)
	return rr
}

// decodeData unmarshals the "data" field of a response envelope into dst.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, rr.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("decode data: %v (body: %s)", err, rr.Body.String())
	}
}

// errorField returns the "error" field of a failure envelope.
func errorField(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v (body: %s)", err, rr.Body.String())
	}
	return envelope.Error
}

// uniqueTitle returns a title no other test run will have used.
func uniqueTitle(prefix string) string {
	return prefix + " " + uuid.NewString()
}

// createPost creates a post through the API and registers a cleanup.
func (env *testEnv) createPost(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	rr := env.do(t, http.MethodPost, "/api/posts", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create post: got %d, want 201 (body: %s)", rr.Code, rr.Body.String())
	}

	var post map[string]any
	decodeData(t, rr, &post)

	id := int64(post["id"].(float64))
	t.Cleanup(func() { env.Posts.Delete(id) })
	return post
}
