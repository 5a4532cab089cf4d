package geo

import (
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/annotation"
)

// HasConflict reports whether group declares an attribute in the geography
// dimension, in which case the declared attributes replace the
// auto-discovered dimension.
func HasConflict(ctx *Context, group *annotation.Group) bool {
	name := ctx.DimensionName()
	if name == "" || group == nil {
		return false
	}
	for _, a := range group.Annotations {
		if a.Type != annotation.TypeCreateAttribute {
			continue
		}
		d, err := a.Directive()
		if err != nil {
			continue
		}
		if attr, ok := d.(*annotation.CreateAttribute); ok && strings.EqualFold(attr.Dimension, name) {
			return true
		}
	}
	return false
}

// DimensionRemover is the part of a modeling workspace that can drop a
// dimension.
type DimensionRemover interface {
	RemoveDimension(name string) bool
}

// RemoveAutoDimension drops the auto-discovered geography dimension from ws.
func RemoveAutoDimension(ws DimensionRemover, ctx *Context) bool {
	name := ctx.DimensionName()
	if name == "" {
		return false
	}
	return ws.RemoveDimension(name)
}
