package annotation

import (
	"regexp"
	"slices"
)

// Shared dimension validation messages.
const (
	MsgNoKey             = "shared dimension has no dimension key"
	MsgMultipleKeys      = "shared dimension has more than one dimension key"
	MsgDimensionMismatch = "all annotations of a shared dimension must use the same dimension name"
	MsgWrongType         = "shared dimension may only contain dimension key and attribute annotations"
	MsgMalformed         = "shared dimension contains a dimension key or attribute annotation whose properties cannot be read"
)

var placeholderRe = regexp.MustCompile(`\$\{[^}]+\}|%%[^%]+%%`)

// IsPlaceholder reports whether name still contains an unresolved variable
// reference such as ${NAME} or %%NAME%%.
func IsPlaceholder(name string) bool {
	return placeholderRe.MatchString(name)
}

// Validation is the outcome of ValidateSharedDimension: distinct messages in
// the order they were first raised.
type Validation struct {
	errs []string
}

func (v *Validation) add(msg string) {
	if !slices.Contains(v.errs, msg) {
		v.errs = append(v.errs, msg)
	}
}

// Errors returns the distinct error messages.
func (v *Validation) Errors() []string {
	return slices.Clone(v.errs)
}

// HasErrors reports whether any rule was violated.
func (v *Validation) HasErrors() bool {
	return len(v.errs) > 0
}

// ValidateSharedDimension checks the structural rules of a shared dimension
// group: exactly one dimension key, only key and attribute annotations, and a
// single dimension name. Groups not marked shared, and groups whose name is
// still a variable placeholder, are not checked.
func ValidateSharedDimension(g *Group) *Validation {
	v := &Validation{}
	if g == nil || !g.Shared || IsPlaceholder(g.Name) {
		return v
	}

	keys := 0
	dimension := ""
	seenDimension := false
	for _, a := range g.Annotations {
		d, err := a.Directive()
		if err != nil {
			switch a.Type {
			case TypeCreateDimensionKey:
				keys++
				if keys > 1 {
					v.add(MsgMultipleKeys)
				}
				v.add(MsgMalformed)
			case TypeCreateAttribute:
				v.add(MsgMalformed)
			default:
				v.add(MsgWrongType)
			}
			continue
		}

		var dim string
		switch d := d.(type) {
		case *CreateDimensionKey:
			keys++
			if keys > 1 {
				v.add(MsgMultipleKeys)
			}
			dim = d.Dimension
		case *CreateAttribute:
			dim = d.Dimension
		default:
			v.add(MsgWrongType)
			continue
		}

		if !seenDimension {
			dimension = dim
			seenDimension = true
		} else if dim != dimension {
			v.add(MsgDimensionMismatch)
		}
	}
	if keys == 0 {
		v.add(MsgNoKey)
	}
	return v
}
