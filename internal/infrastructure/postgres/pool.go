package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/pkg/config"
)

// NewPool abre el pool y verifica la conexión. appName queda como application_name en pg_stat_activity.
func NewPool(ctx context.Context, cfg config.DBConfig, appName string) (*pgxpool.Pool, error) {
	poolConfig, err := buildPoolConfig(cfg, appName)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

func buildPoolConfig(cfg config.DBConfig, appName string) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	poolConfig.MinConns = min(2, poolConfig.MaxConns)
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	rp := poolConfig.ConnConfig.RuntimeParams
	if appName != "" {
		rp["application_name"] = appName
	}
	// Los timestamps se guardan en UTC; la zona de los reportes la aplica la app.
	rp["timezone"] = "UTC"

	// NUMERIC -> decimal.Decimal en cada conexión nueva.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolConfig, nil
}

// HealthStatus estado del pool para /health.
type HealthStatus struct {
	Status     string `json:"status"` // ok | degraded
	LatencyMS  int64  `json:"latency_ms"`
	TotalConns int32  `json:"total_conns"`
	IdleConns  int32  `json:"idle_conns"`
}

// Health hace ping con timeout corto y devuelve las estadísticas del pool.
func Health(ctx context.Context, pool *pgxpool.Pool) (HealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := pool.Ping(ctx)
	stat := pool.Stat()
	h := HealthStatus{
		Status:     "ok",
		LatencyMS:  time.Since(start).Milliseconds(),
		TotalConns: stat.TotalConns(),
		IdleConns:  stat.IdleConns(),
	}
	if err != nil {
		h.Status = "degraded"
		return h, fmt.Errorf("ping DB: %w", err)
	}
	return h, nil
}
