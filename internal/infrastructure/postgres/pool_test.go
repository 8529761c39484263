package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/pkg/config"
)

func TestBuildPoolConfig(t *testing.T) {
	cfg := config.DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "stock",
		Password: "p@ss:word",
		DBName:   "gestion_stock",
		SSLMode:  "disable",
		MaxConns: 10,
	}

	pc, err := buildPoolConfig(cfg, "gestion-stock")
	require.NoError(t, err)

	assert.EqualValues(t, 10, pc.MaxConns)
	assert.EqualValues(t, 2, pc.MinConns)
	assert.Equal(t, "p@ss:word", pc.ConnConfig.Password)
	assert.Equal(t, "gestion-stock", pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, "UTC", pc.ConnConfig.RuntimeParams["timezone"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestBuildPoolConfig_DatabaseURL(t *testing.T) {
	pc, err := buildPoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@db:6543/otra?sslmode=disable", MaxConns: 1}, "")
	require.NoError(t, err)

	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.EqualValues(t, 6543, pc.ConnConfig.Port)
	assert.Equal(t, "otra", pc.ConnConfig.Database)
	assert.EqualValues(t, 1, pc.MinConns)
	_, ok := pc.ConnConfig.RuntimeParams["application_name"]
	assert.False(t, ok)
}

func TestBuildPoolConfig_DSNInvalido(t *testing.T) {
	_, err := buildPoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"}, "x")
	assert.Error(t, err)
}
