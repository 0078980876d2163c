// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the JSON API and the
// public site. API responses use a small envelope: successful reads and
// writes return {"data": ...}, deletions return {"message": ...}, and
// failures return {"error": ...} with a 4xx or 5xx status.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type dataEnvelope struct {
	Data any `json:"data"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// writeJSON serializes v with the given status. Encoding failures are
// logged; by then the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeData responds with {"data": v}.
func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, dataEnvelope{Data: v})
}

// writeMessage responds with {"message": msg}.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageEnvelope{Message: msg})
}

// writeError responds with {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorEnvelope{Error: msg})
}

// serverError logs err and responds with a 500. The status is the generic
// failure signal; the body carries the underlying error message so API
// callers can see what the storage layer reported.
func serverError(w http.ResponseWriter, op string, err error) {
	slog.Error(op, "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}
