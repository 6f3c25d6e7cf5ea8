package database

import (
	"Keystone/internal/api/config"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	assert.Equal(t, "raw", BuildDSN(&config.DBConfig{DSN: "raw", Host: "ignored"}))

	dsn := BuildDSN(&config.DBConfig{Host: "db", Port: 3306, User: "keystone", Password: "p@ss", Name: "ledger"})
	parsed, err := mysqldriver.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "keystone", parsed.User)
	assert.Equal(t, "p@ss", parsed.Passwd)
	assert.Equal(t, "ledger", parsed.DBName)
	assert.True(t, parsed.ParseTime)
}
