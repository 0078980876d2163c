// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sectionpress/internal/render"
	"sectionpress/internal/store"
)

// Public groups handlers for the public-facing blog pages.
type Public struct {
	posts    *store.PostStore
	renderer *render.Renderer
}

// NewPublic creates a new Public handler group.
func NewPublic(posts *store.PostStore, renderer *render.Renderer) *Public {
	return &Public{posts: posts, renderer: renderer}
}

// Home renders the post index. The same listing backs both / and /blog.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := p.posts.List()
	if err != nil {
		slog.Error("list posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderer.Page(w, "home", &render.PageData{
		Title: "Home",
		Posts: posts,
	})
}

// Post renders a single post's sections in display order.
func (p *Public) Post(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	post, err := p.posts.FindBySlug(slugParam)
	if err != nil {
		slog.Error("find post by slug failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	p.renderer.Page(w, "post", &render.PageData{
		Title: post.Title,
		Post:  post,
	})
}
