// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sectionpress/internal/models"
)

// postRequest is the JSON body accepted by post create and update.
// Sections is a pointer so that an update can distinguish "leave the
// sections alone" (absent) from "replace with this list" (present,
// possibly empty).
type postRequest struct {
	Title    string          `json:"title"`
	Excerpt  *string         `json:"excerpt"`
	Author   *string         `json:"author"`
	Sections *[]sectionInput `json:"sections"`
}

func (r postRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
	)
}

// sectionInput is the JSON shape of a section inside a post body or a
// standalone section update. Order is a pointer so that create can fall
// back to the element's index when the client omits it.
type sectionInput struct {
	Type     string          `json:"type"`
	Title    *string         `json:"title"`
	Content  string          `json:"content"`
	Metadata models.Metadata `json:"metadata"`
	Order    *int            `json:"order"`
}

func (s sectionInput) Validate() error {
	types := make([]any, len(models.SectionTypes))
	for i, t := range models.SectionTypes {
		types[i] = string(t)
	}
	return validation.ValidateStruct(&s,
		validation.Field(&s.Type,
			validation.Required.Error("section type is required"),
			validation.In(types...).Error("section type must be one of: text, html, code, image, video"),
		),
		validation.Field(&s.Content,
			validation.Required.Error("section content is required"),
		),
	)
}

// toSection converts the input to a model section, using fallbackOrder
// when the client did not supply one.
func (s sectionInput) toSection(fallbackOrder int) models.Section {
	order := fallbackOrder
	if s.Order != nil {
		order = *s.Order
	}
	return models.Section{
		Type:     models.SectionType(s.Type),
		Title:    s.Title,
		Content:  s.Content,
		Metadata: s.Metadata,
		Order:    order,
	}
}

// decodeJSON parses a request body into dst, rejecting malformed JSON
// with an error suitable for a 400 response. Unknown fields are ignored,
// so clients may echo back full post objects on update.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return errors.New("request body is not valid JSON")
	}
	return nil
}

// validatePostRequest runs the struct rules plus the per-section rules,
// reporting the first failure.
func validatePostRequest(req postRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.Sections != nil {
		for _, sec := range *req.Sections {
			if err := sec.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
