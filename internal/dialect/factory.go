package dialect

import "fmt"

// GetDialect returns the appropriate Dialect implementation based on driver name.
func GetDialect(driver string) (Dialect, error) {
	switch driver {
	case "sqlserver", "mssql":
		return &MSSQLDialect{}, nil
	case "snowflake":
		return &SnowflakeDialect{}, nil
	case "postgres":
		return &PostgresDialect{}, nil
	case "mysql":
		return &MysqlDialect{}, nil
	case "oracle":
		return &OracleDialect{}, nil
	case "sqlite":
		return &SQLiteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}

// Ensure interface implementation
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*SnowflakeDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
var _ Dialect = (*SQLiteDialect)(nil)
