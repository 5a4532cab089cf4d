// Package mysql provides a MySQL database adapter for leapcube.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/leapstack-labs/leapcube/pkg/adapter"
)

// Adapter implements the adapter.Adapter interface for MySQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new MySQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DefaultSchema returns the configured database, which MySQL treats as the schema.
func (a *Adapter) DefaultSchema() string {
	return a.Cfg.Database
}

// Connect establishes a connection to MySQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	a.Logger.Debug("connecting to mysql", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("mysql", buildMySQLDSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to open mysql connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping mysql: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildMySQLDSN constructs a go-sql-driver DSN from the adapter config.
func buildMySQLDSN(cfg adapter.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	mc.DBName = cfg.Database
	mc.ParseTime = true
	for k, v := range cfg.Options {
		if mc.Params == nil {
			mc.Params = make(map[string]string)
		}
		mc.Params[k] = v
	}
	return mc.FormatDSN()
}

// GetTableMetadata retrieves the columns of a table.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	return a.GetTableMetadataCommon(ctx, table, a.DefaultSchema(), adapter.QuestionPlaceholder)
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
