// internal/config/database.go
package config

import "fmt"

// DSN builds the Postgres connection string, including the TLS root
// certificate when one is configured.
func (c DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
	if c.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", c.SSLRootCert)
	}
	return dsn
}
