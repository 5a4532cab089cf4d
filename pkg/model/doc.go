// Package model defines the Domain produced by the modeler: physical models
// bound to database tables, logical (business) models bound to physical
// columns, and the OLAP metadata (dimensions, hierarchies, cubes, measures)
// attached to analysis logical models.
//
// Object references between layers are held both as pointers, for in-memory
// work, and as ids, for persistence. Bind keeps the two in sync and
// Domain.Link restores pointers after decoding.
package model
