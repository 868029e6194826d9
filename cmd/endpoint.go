package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"qa-insight/internal/dialect"
	"qa-insight/internal/engine"
	"qa-insight/internal/fetch"
)

// Endpoint is an open connection to one side.
type Endpoint struct {
	Config  *EndpointConfig
	DB      *sql.DB
	Dialect dialect.Dialect
	Fetcher *fetch.SQLFetcher
}

// OpenEndpoint connects to the endpoint configured for side.
func OpenEndpoint(ctx context.Context, side string) (*Endpoint, error) {
	config, err := GetEndpointConfig(side)
	if err != nil {
		return nil, err
	}

	d, err := dialect.GetDialect(config.Driver)
	if err != nil {
		return nil, fmt.Errorf("%s endpoint: %w", side, err)
	}

	Log.Info("connecting", zap.String("side", side), zap.String("name", config.Name), zap.String("driver", config.Driver))

	db, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", config.Name, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, viper.GetDuration("settings.timeout"))
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", config.Name, err)
	}

	fetcher := fetch.NewSQLFetcher(db, d, Log.With(zap.String("side", side)), viper.GetDuration("settings.timeout"))
	return &Endpoint{Config: config, DB: db, Dialect: d, Fetcher: fetcher}, nil
}

func (e *Endpoint) Close() {
	e.DB.Close()
}

// tableFlags holds per-command overrides of the configured database and schema.
type tableFlags struct {
	leftTable, rightTable      string
	leftDatabase, leftSchema   string
	rightDatabase, rightSchema string
}

func (f *tableFlags) register(cmd *cobra.Command, requireTable bool) {
	if requireTable {
		cmd.Flags().StringVarP(&f.leftTable, "left-table", "l", "", "Table on the left endpoint")
		cmd.Flags().StringVarP(&f.rightTable, "right-table", "r", "", "Table on the right endpoint (defaults to --left-table)")
		cmd.MarkFlagRequired("left-table")
	}
	cmd.Flags().StringVar(&f.leftDatabase, "left-database", "", "Override the left endpoint's database")
	cmd.Flags().StringVar(&f.leftSchema, "left-schema", "", "Override the left endpoint's schema")
	cmd.Flags().StringVar(&f.rightDatabase, "right-database", "", "Override the right endpoint's database")
	cmd.Flags().StringVar(&f.rightSchema, "right-schema", "", "Override the right endpoint's schema")
}

func (f *tableFlags) pair() engine.Pair {
	return engine.Pair{Left: f.leftTable, Right: f.rightTable}
}

func side(e *Endpoint, fetcher fetch.Fetcher, database, schemaName string) engine.Side {
	s := engine.Side{
		Name:     e.Config.Name,
		Fetcher:  fetcher,
		Rule:     e.Config.Rule(e.Dialect),
		Database: e.Config.Database,
		Schema:   e.Config.Schema,
	}
	if database != "" {
		s.Database = database
	}
	if schemaName != "" {
		s.Schema = schemaName
	}
	return s
}

// openValidator connects both endpoints and returns a validator over cached
// fetchers. The cleanup func closes everything.
func openValidator(ctx context.Context, f *tableFlags) (*engine.Validator, func(), error) {
	opts, err := GetCompareOptions()
	if err != nil {
		return nil, nil, err
	}

	left, err := OpenEndpoint(ctx, SideLeft)
	if err != nil {
		return nil, nil, err
	}
	right, err := OpenEndpoint(ctx, SideRight)
	if err != nil {
		left.Close()
		return nil, nil, err
	}

	ttl := viper.GetDuration("settings.cache_ttl")
	leftCache, err := fetch.NewCached(left.Fetcher, ttl)
	if err != nil {
		left.Close()
		right.Close()
		return nil, nil, err
	}
	rightCache, err := fetch.NewCached(right.Fetcher, ttl)
	if err != nil {
		leftCache.Close()
		left.Close()
		right.Close()
		return nil, nil, err
	}

	v := engine.NewValidator(
		side(left, leftCache, f.leftDatabase, f.leftSchema),
		side(right, rightCache, f.rightDatabase, f.rightSchema),
		opts, Log,
	)
	cleanup := func() {
		leftCache.Close()
		rightCache.Close()
		left.Close()
		right.Close()
	}
	return v, cleanup, nil
}
