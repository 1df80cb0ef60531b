// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ippc

import "strings"

var (
	escaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;")
	unescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
)

// Escape replaces the five XML reserved characters with their named entities.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape is the inverse of Escape.
// Character references other than the five named entities are left alone.
func Unescape(s string) string {
	return unescaper.Replace(s)
}
