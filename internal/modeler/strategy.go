package modeler

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// ImportStrategy decides which physical columns become logical columns and
// what they are called.
type ImportStrategy interface {
	Accept(col core.Column) bool
	DisplayName(col core.Column) string
}

// DefaultImportStrategy imports every column except those matching an
// Exclude glob (case-insensitive). With PrettyNames, names are split on
// underscores and dashes and title-cased ("order_date" becomes "Order Date").
type DefaultImportStrategy struct {
	PrettyNames bool
	Exclude     []string
}

// Accept implements ImportStrategy.
func (s DefaultImportStrategy) Accept(col core.Column) bool {
	name := strings.ToLower(col.Name)
	for _, pattern := range s.Exclude {
		if ok, _ := path.Match(strings.ToLower(pattern), name); ok {
			return false
		}
	}
	return true
}

// DisplayName implements ImportStrategy.
func (s DefaultImportStrategy) DisplayName(col core.Column) string {
	if !s.PrettyNames {
		return col.Name
	}
	words := strings.FieldsFunc(col.Name, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	if len(words) == 0 {
		return col.Name
	}
	return cases.Title(language.English).String(strings.ToLower(strings.Join(words, " ")))
}
