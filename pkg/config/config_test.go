package config

import (
	"strings"
	"testing"
	_ "time/tzdata"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "gestion-stock", cfg.App.Name)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, "session", cfg.JWT.CookieName)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_AUTOMIGRATE", "true")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/x")
	t.Setenv("SESSION_COOKIE", "gs_session")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("REPORT_TIMEZONE", "Africa/Abidjan")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "postgres://u:p@db/x", cfg.DB.ConnectionString())
	assert.Equal(t, "gs_session", cfg.JWT.CookieName)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)

	loc, err := cfg.Report.Location()
	require.NoError(t, err)
	assert.Equal(t, "Africa/Abidjan", loc.String())
}

func TestLoad_ArchivoYAMLConEntornoPrioritario(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
app:
  name: stock-yaml
http:
  port: 9090
log:
  level: debug
`)))
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := load(v)
	require.NoError(t, err)

	assert.Equal(t, "stock-yaml", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 7070, cfg.HTTP.Port)
}

func TestLoad_Errores(t *testing.T) {
	cases := map[string]map[string]string{
		"producción sin secret": {"APP_ENV": "production"},
		"timezone inválida":     {"REPORT_TIMEZONE": "Marte/Olympus"},
		"expiración no válida":  {"JWT_EXPIRATION_MINUTES": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, val := range env {
				t.Setenv(k, val)
			}
			_, err := load(viper.New())
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "stock", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/stock?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
