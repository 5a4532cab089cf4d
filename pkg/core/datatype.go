package core

import (
	"fmt"
	"strings"
)

// DataType is the logical type of a physical column.
type DataType int

// Data types understood by the modeler.
const (
	DataTypeUnknown DataType = iota
	DataTypeString
	DataTypeInteger
	DataTypeNumber
	DataTypeBigNumber
	DataTypeBoolean
	DataTypeDate
	DataTypeTimestamp
)

var dataTypeNames = [...]string{
	DataTypeUnknown:   "unknown",
	DataTypeString:    "string",
	DataTypeInteger:   "integer",
	DataTypeNumber:    "number",
	DataTypeBigNumber: "big-number",
	DataTypeBoolean:   "boolean",
	DataTypeDate:      "date",
	DataTypeTimestamp: "timestamp",
}

// String returns the canonical lower-case name of the type.
func (d DataType) String() string {
	if d < 0 || int(d) >= len(dataTypeNames) {
		return dataTypeNames[DataTypeUnknown]
	}
	return dataTypeNames[d]
}

// IsNumeric reports whether values of this type can be aggregated.
func (d DataType) IsNumeric() bool {
	return d == DataTypeInteger || d == DataTypeNumber || d == DataTypeBigNumber
}

// IsTemporal reports whether the type is a date or a timestamp.
func (d DataType) IsTemporal() bool {
	return d == DataTypeDate || d == DataTypeTimestamp
}

// MarshalText implements encoding.TextMarshaler.
func (d DataType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DataType) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range dataTypeNames {
		if n == name {
			*d = DataType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown data type %q", string(text))
}

// ParseDataType maps a raw SQL type name, as reported by information_schema
// or a driver, onto a DataType. Length and precision suffixes are ignored.
func ParseDataType(sqlType string) DataType {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.TrimSuffix(t, " unsigned")

	switch {
	case t == "":
		return DataTypeUnknown
	case strings.HasPrefix(t, "timestamp"), strings.HasPrefix(t, "datetime"),
		strings.HasPrefix(t, "time"), t == "timestamptz":
		return DataTypeTimestamp
	case t == "date":
		return DataTypeDate
	case t == "boolean", t == "bool", t == "bit":
		return DataTypeBoolean
	case t == "integer", t == "int", t == "bigint", t == "smallint", t == "tinyint",
		t == "mediumint", t == "hugeint", t == "ubigint", t == "uinteger", t == "usmallint",
		t == "utinyint", t == "int2", t == "int4", t == "int8", t == "serial", t == "bigserial":
		return DataTypeInteger
	case t == "numeric", t == "decimal", t == "number":
		return DataTypeBigNumber
	case t == "double", t == "double precision", t == "float", t == "real",
		t == "float4", t == "float8":
		return DataTypeNumber
	case strings.Contains(t, "char"), strings.Contains(t, "text"), t == "string",
		t == "uuid", t == "enum", t == "json", t == "jsonb", t == "clob":
		return DataTypeString
	}
	return DataTypeUnknown
}
