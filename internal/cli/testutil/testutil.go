// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/leapstack-labs/leapcube/internal/testutil"
)

// Project is a temporary leapcube project backed by a SQLite warehouse.
type Project struct {
	Dir        string
	ConfigPath string
	Database   string
}

// Path returns the absolute path of a file in the project.
func (p *Project) Path(name string) string {
	return filepath.Join(p.Dir, name)
}

// SetupTestProject creates a project with an orders table, a shared customer
// dimension, a sales annotation group and an analysis schema.
func SetupTestProject(t *testing.T) *Project {
	t.Helper()

	dir := t.TempDir()
	p := &Project{
		Dir:        dir,
		ConfigPath: filepath.Join(dir, "leapcube.yaml"),
		Database:   filepath.Join(dir, "warehouse.db"),
	}

	testutil.ExecSQLite(t, p.Database,
		`CREATE TABLE orders (ORDER_ID INTEGER, CUSTOMER_ID INTEGER, CUSTOMER TEXT, COUNTRY TEXT, CITY TEXT, ORDER_DATE TIMESTAMP, AMOUNT DECIMAL(12,2))`,
		`CREATE TABLE orders_v2 (ORDER_ID INTEGER, CUSTOMER_ID INTEGER, CUSTOMER TEXT, COUNTRY TEXT, CITY TEXT, ORDER_DATE TIMESTAMP, AMOUNT DECIMAL(12,2), CHANNEL TEXT)`,
		`CREATE TABLE customers (ID INTEGER, NAME TEXT, SEGMENT TEXT)`,
	)

	files := map[string]string{
		"leapcube.yaml": `connection_name: warehouse
state_path: .leapcube/state.db
target:
  type: sqlite
  database: warehouse.db
geo:
  dimension_name: Geography
  roles: [COUNTRY, CITY]
  required_parents:
    CITY: [COUNTRY]
`,
		"customer.yaml": `name: customer
shared: true
description: Customer dimension
data_providers:
  - name: crm
    table: customers
    key_column: ID
annotations:
  - type: create_dimension_key
    properties: {dimension: Customer, field: ID}
  - type: create_attribute
    properties: {dimension: Customer, name: Segment, field: SEGMENT}
  - type: create_attribute
    properties: {dimension: Customer, name: Name, field: NAME, parent_attribute: Segment}
`,
		"broken.yaml": `name: broken
shared: true
annotations:
  - type: create_attribute
    properties: {dimension: Customer, name: Name, field: NAME}
  - type: create_measure
    properties: {name: Count, field: ID, aggregation: count}
`,
		"sales.yaml": `name: sales
annotations:
  - type: create_measure
    properties: {name: Revenue, field: AMOUNT, aggregation: sum, format_string: "#,##0.00"}
  - type: create_attribute
    properties: {dimension: Buyer, name: Buyer, field: CUSTOMER}
  - type: link_dimension
    properties: {name: Customer, field: CUSTOMER_ID, shared_dimension: customer}
  - type: blank
`,
		"sales.mondrian.xml": `<?xml version="1.0" encoding="UTF-8"?>
<Schema name="Sales">
  <Cube name="Sales">
    <Table name="orders"/>
    <Dimension name="Buyer">
      <Hierarchy hasAll="true">
        <Level name="Buyer" column="CUSTOMER" type="String"/>
      </Hierarchy>
    </Dimension>
    <Measure name="Revenue" column="AMOUNT" aggregator="sum" type="Numeric"/>
  </Cube>
</Schema>
`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return p
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
	}
	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
