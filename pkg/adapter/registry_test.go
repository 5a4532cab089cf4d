package adapter

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownAdapterError_Error(t *testing.T) {
	err := &UnknownAdapterError{
		Type:      "fake_db",
		Available: []string{"duckdb", "postgres"},
	}

	msg := err.Error()

	assert.NotEmpty(t, msg, "error message should not be empty")
	assert.Contains(t, msg, "fake_db", "error should mention the unknown type 'fake_db'")
	assert.Contains(t, msg, "leapcube.yaml", "error should mention config file")
}

func TestRegister(t *testing.T) {
	Register("test_adapter_internal", func(_ *slog.Logger) Adapter { return nil })

	assert.True(t, IsRegistered("test_adapter_internal"), "test_adapter_internal should be registered after Register()")

	factory, ok := Get("test_adapter_internal")
	assert.True(t, ok, "Get(test_adapter_internal) should return true after Register()")
	assert.NotNil(t, factory, "Get(test_adapter_internal) should return non-nil factory")
	assert.Contains(t, ListAdapters(), "test_adapter_internal")
}

func TestRegister_Aliases(t *testing.T) {
	Register("Test_Alias_DB", func(_ *slog.Logger) Adapter { return nil }, "tadb", "TADB2")

	tests := []struct {
		name  string
		canon string
		ok    bool
	}{
		{"test_alias_db", "test_alias_db", true},
		{"TEST_ALIAS_DB", "test_alias_db", true},
		{"tadb", "test_alias_db", true},
		{"tadb2", "test_alias_db", true},
		{"other", "other", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Canonical(tt.name)
			assert.Equal(t, tt.canon, got)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ok, IsRegistered(tt.name))
		})
	}

	assert.Contains(t, ListAdapters(), "test_alias_db")
	assert.NotContains(t, ListAdapters(), "tadb", "aliases are not listed")
}

func TestNewAdapter_EmptyType(t *testing.T) {
	_, err := NewAdapter(Config{Type: ""}, nil)
	require.Error(t, err, "NewAdapter with empty type should fail")
	assert.Equal(t, "adapter type not specified", err.Error(), "error message")
}

func TestNewAdapter_Unknown(t *testing.T) {
	_, err := NewAdapter(Config{Type: "nope"}, nil)
	var unknown *UnknownAdapterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.Type)
}
