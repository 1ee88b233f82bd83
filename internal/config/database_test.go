package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("includes sslmode and timezone", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "db.internal",
			Port:     5433,
			Name:     "oneshot",
			User:     "oneshot",
			Password: "secret",
			SSLMode:  "require",
			Timezone: "Asia/Seoul",
		}

		dsn := cfg.DSN()

		assert.Equal(t, "host=db.internal port=5433 user=oneshot password=secret dbname=oneshot sslmode=require TimeZone=Asia/Seoul", dsn)
	})

	t.Run("defaults to disabled ssl in the service timezone", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Name:     "oneshot",
			User:     "postgres",
			Password: "postgres",
		}

		dsn := cfg.DSN()

		assert.Contains(t, dsn, "sslmode=disable")
		assert.Contains(t, dsn, "TimeZone=Asia/Seoul")
	})
}
