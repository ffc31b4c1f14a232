// Package ident implements IEC 61131-3's case-insensitive identifier
// comparison, used in narrowing for function formal parameter names
// (including EN/ENO detection) and for FB instance and FB type name keys.
// Grounded on the teacher's
// pkg/ident API (Normalize/Equal/Compare/Contains/Index/IsKeyword), but
// built on golang.org/x/text/cases instead of an ASCII-only byte loop, so
// non-ASCII identifiers (permitted by the standard's WSTRING-adjacent
// extended character set) fold correctly too.
package ident

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// folder produces the comparison key: full Unicode case-folding, stronger
// than a simple lowercase (handles e.g. German ß, Turkish dotless i)
// without requiring this package to know the source file's locale.
var folder = cases.Fold()

// lowerer produces Normalize's canonical display form. language.Und (the
// undetermined locale) disables locale-specific tailoring such as
// Turkish's dotted/dotless I rule, which IEC 61131-3 identifiers should
// not be subject to.
var lowerer = cases.Lower(language.Und)

// Normalize returns s lowercased to a canonical, displayable form.
func Normalize(s string) string {
	return lowerer.String(s)
}

// Equal reports whether a and b denote the same identifier under IEC
// 61131-3's case-insensitivity rule.
func Equal(a, b string) bool {
	return foldKey(a) == foldKey(b)
}

func foldKey(s string) string {
	return folder.String(s)
}

// Compare orders a and b case-insensitively: <0, 0, or >0, matching
// strings.Compare's contract on the normalized forms.
func Compare(a, b string) int {
	return strings.Compare(Normalize(a), Normalize(b))
}

// Contains reports whether search appears in slice under Equal.
func Contains(slice []string, search string) bool {
	return Index(slice, search) >= 0
}

// Index returns the first index of search in slice under Equal, or -1.
func Index(slice []string, search string) int {
	target := foldKey(search)
	for i, s := range slice {
		if foldKey(s) == target {
			return i
		}
	}
	return -1
}

// IsKeyword reports whether s case-insensitively matches one of keywords.
func IsKeyword(s string, keywords ...string) bool {
	return Contains(keywords, s)
}
