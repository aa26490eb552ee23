package postgres

import (
	"testing"
	"time"

	"github.com/andresuchdata/inventory-dashboard/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestCellString(t *testing.T) {
	assert.Equal(t, "", cellString(nil))
	assert.Equal(t, "ACME", cellString([]byte("ACME")))
	assert.Equal(t, "42", cellString(int64(42)))
	assert.Equal(t, "2.5", cellString(2.5))
	assert.Equal(t, "true", cellString(true))
	assert.Equal(t, "2024-04-03", cellString(time.Date(2024, 4, 3, 9, 0, 0, 0, time.UTC)))
}

func TestConnString(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=inv sslmode=disable", connString(cfg))
}
