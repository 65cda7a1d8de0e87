// Package ident normalizes identifiers. Structured Text names are
// case-insensitive, so every registry keys its entries by Fold(name).
package ident

import (
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// cases.Caser keeps state between calls and must not be shared.
var folders = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// Fold returns the case-folded form of name.
func Fold(name string) string {
	if isASCII(name) {
		return strings.ToLower(name)
	}
	c := folders.Get().(*cases.Caser)
	defer folders.Put(c)
	return c.String(name)
}

// Equal reports whether a and b name the same thing.
func Equal(a, b string) bool {
	if a == b {
		return true
	}
	return Fold(a) == Fold(b)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
