// Package schema retargets an existing analysis (Mondrian) schema document
// at a new table and model name.
//
// The transformer first validates the document against the live table: the
// schema must reference exactly one table and contain exactly one cube, and
// every Level and Measure column must exist in the table with a type that
// satisfies the element's declared logical type. Only when all checks pass
// are the name attributes of Table, Schema and Cube rewritten. Everything
// else in the document is returned byte for byte.
package schema
