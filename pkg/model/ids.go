package model

import (
	"strconv"
	"strings"
)

// ID builds a deterministic identifier from a prefix and name parts.
// Parts are upper-cased and every run of characters other than ASCII
// letters and digits becomes a single underscore.
func ID(prefix string, parts ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range parts {
		b.WriteByte('_')
		sep := false
		for _, r := range strings.ToUpper(p) {
			if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
				if sep && b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
					b.WriteByte('_')
				}
				b.WriteRune(r)
				sep = false
				continue
			}
			sep = true
		}
	}
	return b.String()
}

// IDSet hands out ids that are unique within one scope, such as the columns
// of a table. ID folds case and punctuation and drops non-ASCII letters, so
// distinct names can map to the same id; later ones get a numeric suffix.
type IDSet struct {
	used map[string]bool
}

// ID returns ID(prefix, parts...), suffixed with _2, _3, ... when the id is
// already taken in the set.
func (s *IDSet) ID(prefix string, parts ...string) string {
	if s.used == nil {
		s.used = make(map[string]bool)
	}
	base := ID(prefix, parts...)
	id := base
	sep := "_"
	if strings.HasSuffix(base, "_") {
		sep = ""
	}
	for n := 2; s.used[id]; n++ {
		id = base + sep + strconv.Itoa(n)
	}
	s.used[id] = true
	return id
}
