// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
)

// GetSection returns a single section.
func (a *API) GetSection(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(w, r)
	if !ok {
		return
	}

	sec, err := a.sections.FindByID(id)
	if err != nil {
		serverError(w, "find section failed", err)
		return
	}
	if sec == nil {
		writeError(w, http.StatusNotFound, "section not found")
		return
	}
	writeData(w, http.StatusOK, sec)
}

// UpdateSection rewrites a section's content fields. The owning post
// cannot be changed through this endpoint. An omitted order resets to 0.
func (a *API) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(w, r)
	if !ok {
		return
	}

	var req sectionInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sec := req.toSection(0)
	sec.ID = id

	updated, err := a.sections.Update(&sec)
	if err != nil {
		serverError(w, "update section failed", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "section not found")
		return
	}
	writeData(w, http.StatusOK, updated)
}

// DeleteSection removes a single section from its post.
func (a *API) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(w, r)
	if !ok {
		return
	}

	deleted, err := a.sections.Delete(id)
	if err != nil {
		serverError(w, "delete section failed", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "section not found")
		return
	}
	writeMessage(w, http.StatusOK, "section deleted")
}
