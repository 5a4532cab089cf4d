package mysql

import (
	"context"
	"testing"

	"github.com/leapstack-labs/leapcube/pkg/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMySQLDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   adapter.Config
		expected string
	}{
		{
			name: "basic connection",
			config: adapter.Config{
				Host:     "db.example.com",
				Port:     3307,
				Database: "sales",
				Username: "report",
				Password: "secret",
			},
			expected: "report:secret@tcp(db.example.com:3307)/sales?parseTime=true",
		},
		{
			name:     "defaults",
			config:   adapter.Config{Database: "sales"},
			expected: "tcp(localhost:3306)/sales?parseTime=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildMySQLDSN(tt.config))
		})
	}
}

func TestAdapter_NotConnected(t *testing.T) {
	adp := New(nil)

	_, err := adp.GetTableMetadata(context.Background(), "orders")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not established")
	assert.NoError(t, adp.Close())
}

func TestAdapter_Registry(t *testing.T) {
	factory, ok := adapter.Get("mysql")
	require.True(t, ok)
	_, ok = factory(nil).(*Adapter)
	assert.True(t, ok)
}
