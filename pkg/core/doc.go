// Package core defines the shared language of the leapcube system.
//
// This package contains:
//   - Physical column vocabulary (DataType, Column, TableMetadata)
//   - Connection configuration (AdapterConfig, TargetConfig, ConnectionInfo)
//   - The tagged modeling error (Error, ErrorKind)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
