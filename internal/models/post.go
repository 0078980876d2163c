// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the core data types persisted by the store layer:
// blog posts and their ordered, typed content sections.
package models

import "time"

// Post represents a blog post. A post owns zero or more sections; deleting
// a post cascades to its sections at the database level.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   *string   `json:"excerpt"`
	Author    *string   `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Sections  []Section `json:"sections,omitempty"`
}
