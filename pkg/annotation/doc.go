// Package annotation defines model annotations: declarative directives that
// turn columns of a modeled table into measures, attributes, dimension keys,
// linked shared dimensions and calculated members.
//
// An annotation is stored as a type discriminant plus a free-form property
// map, so that groups can be written by hand in YAML and persisted as JSON.
// Directive decodes the property map into the typed directive for its kind.
//
// Groups marked as shared describe a single reusable dimension and must pass
// ValidateSharedDimension before they are published.
package annotation
