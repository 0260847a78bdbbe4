package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/srms-gateway/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "srms",
		Password: "secret",
		Name:     "srms_db",
		SSLMode:  "disable",
	})
	assert.Equal(t, "host=db port=5433 user=srms password=secret dbname=srms_db sslmode=disable application_name=srms-gateway", dsn)
}
