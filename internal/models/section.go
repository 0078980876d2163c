// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SectionType is the closed set of content block types a section can hold.
type SectionType string

const (
	SectionTypeText  SectionType = "text"
	SectionTypeHTML  SectionType = "html"
	SectionTypeCode  SectionType = "code"
	SectionTypeImage SectionType = "image"
	SectionTypeVideo SectionType = "video"
)

// SectionTypes lists all valid section types in a stable order.
var SectionTypes = []SectionType{
	SectionTypeText,
	SectionTypeHTML,
	SectionTypeCode,
	SectionTypeImage,
	SectionTypeVideo,
}

// Valid reports whether the type is one of the known section types.
func (t SectionType) Valid() bool {
	for _, known := range SectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Metadata is free-form structured data attached to a section, such as
// {"language": "go"} for code blocks or {"alt": "…"} for images. It is
// stored in a JSONB column; a nil map maps to SQL NULL.
type Metadata map[string]any

// Value implements driver.Valuer, serializing the map for the JSONB column.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner, parsing the JSONB column back into the map.
func (m *Metadata) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("metadata scan: unsupported type %T", src)
	}
	return json.Unmarshal(raw, m)
}

// String returns the string value stored under key, or "" when the key is
// absent or holds a non-string value. Used by the public page renderer for
// hints like the code language or image alt text.
func (m Metadata) String(key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// Section is a single typed content block within a post. Content semantics
// depend on Type: raw text, raw HTML, source code, or an image/video URL.
// Order is a sort key only; it is not required to be unique within a post.
type Section struct {
	ID        int64       `json:"id"`
	PostID    int64       `json:"postId"`
	Type      SectionType `json:"type"`
	Title     *string     `json:"title"`
	Content   string      `json:"content"`
	Metadata  Metadata    `json:"metadata"`
	Order     int         `json:"order"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
