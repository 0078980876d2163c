// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from post titles, and
// collision-free resolution against the set of slugs already in use.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
// The transformation is pure: the same input always yields the same slug.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Checker reports whether a slug is already held by a post other than the
// one identified by excludeID. An excludeID of 0 excludes nothing, which is
// the create case. The PostStore satisfies this interface.
type Checker interface {
	SlugExists(slug string, excludeID int64) (bool, error)
}

// fallbackBase is used when a title reduces to an empty slug (for example a
// title made entirely of stripped characters). An empty slug would not be
// routable, so probing starts from this base instead.
const fallbackBase = "post"

// Resolve turns a title into a slug that no other post holds. It starts
// from the base transformation and, on collision, probes base-1, base-2, …
// in ascending order until a free value is found. When excludeID names the
// post being updated, that post's own slug never counts as a collision, so
// resolving an unchanged title returns the slug the post already has.
//
// The check-then-use sequence is not atomic; the slug UNIQUE constraint is
// the authoritative guard and callers retry on a constraint violation.
func Resolve(c Checker, title string, excludeID int64) (string, error) {
	base := Generate(title)
	if base == "" {
		base = fallbackBase
	}

	candidate := base
	for n := 1; ; n++ {
		exists, err := c.SlugExists(candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("resolve slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
