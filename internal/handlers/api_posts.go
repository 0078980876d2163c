// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sectionpress/internal/models"
	"sectionpress/internal/slug"
	"sectionpress/internal/store"
)

// slugRetryLimit bounds the create/update retries when a concurrent
// writer grabs the resolved slug between the probe and the insert.
const slugRetryLimit = 3

// API groups the JSON API handlers for posts and sections.
type API struct {
	posts    *store.PostStore
	sections *store.SectionStore
}

// NewAPI creates a new API handler group backed by the given stores.
func NewAPI(posts *store.PostStore, sections *store.SectionStore) *API {
	return &API{posts: posts, sections: sections}
}

// ListPosts returns all post summaries, newest first.
func (a *API) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.posts.List()
	if err != nil {
		serverError(w, "list posts failed", err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	writeData(w, http.StatusOK, posts)
}

// CreatePost validates the body, resolves a unique slug from the title,
// and inserts the post with its sections. On a slug race it re-resolves
// and retries before giving up.
func (a *API) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validatePostRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var sections []models.Section
	if req.Sections != nil {
		for i, sec := range *req.Sections {
			sections = append(sections, sec.toSection(i))
		}
	}

	for attempt := 0; attempt < slugRetryLimit; attempt++ {
		s, err := slug.Resolve(a.posts, req.Title, 0)
		if err != nil {
			serverError(w, "resolve slug failed", err)
			return
		}

		post, err := a.posts.Create(&models.Post{
			Title:   req.Title,
			Slug:    s,
			Excerpt: req.Excerpt,
			Author:  req.Author,
		}, sections)
		if err == store.ErrSlugTaken {
			continue
		}
		if err != nil {
			serverError(w, "create post failed", err)
			return
		}

		writeData(w, http.StatusCreated, post)
		return
	}

	serverError(w, "create post failed", store.ErrSlugTaken)
}

// GetPost returns a post with its ordered sections.
func (a *API) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(w, r)
	if !ok {
		return
	}

	post, err := a.posts.FindByID(id)
	if err != nil {
		serverError(w, "find post failed", err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	writeData(w, http.StatusOK, post)
}

// GetPostBySlug returns a post with its ordered sections, looked up by
// slug.
func (a *API) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := a.posts.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		serverError(w, "find post by slug failed", err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	writeData(w, http.StatusOK, post)
}

// UpdatePost rewrites a post's fields, re-resolving the slug from the new
// title while excluding the post itself. The section collection is
// replaced only when the body carries a sections array; omitting it
// leaves the existing sections untouched.
func (a *API) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(w, r)
	if !ok {
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validatePostRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	replaceSections := req.Sections != nil
	var sections []models.Section
	if replaceSections {
		for i, sec := range *req.Sections {
			sections = append(sections, sec.toSection(i))
		}
	}

	for attempt := 0; attempt < slugRetryLimit; attempt++ {
		s, err := slug.Resolve(a.posts, req.Title, id)
		if err != nil {
			serverError(w, "resolve slug failed", err)
			return
		}

		post, err := a.posts.Update(&models.Post{
			ID:      id,
			Title:   req.Title,
			Slug:    s,
			Excerpt: req.Excerpt,
			Author:  req.Author,
		}, sections, replaceSections)
		if err == store.ErrSlugTaken {
			continue
		}
		if err != nil {
			serverError(w, "update post failed", err)
			return
		}
		if post == nil {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}

		writeData(w, http.StatusOK, post)
		return
	}

	serverError(w, "update post failed", store.ErrSlugTaken)
}

// DeletePost removes a post; its sections go with it via the FK cascade.
func (a *API) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(w, r)
	if !ok {
		return
	}

	deleted, err := a.posts.Delete(id)
	if err != nil {
		serverError(w, "delete post failed", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	writeMessage(w, http.StatusOK, "post deleted")
}

// paramID parses the {id} route parameter, writing a 400 and returning
// ok=false when it is not an integer.
func paramID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
