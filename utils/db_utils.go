package utils

import "fmt"

// GetDBSource assembles the postgres connection string for the named
// database. TLS to the database is terminated by the deployment, so sslmode
// stays disabled here.
func GetDBSource(config *Config, dbName string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		config.DBUsername, config.DBPassword, config.DBHost, config.DBPort, dbName)
}
