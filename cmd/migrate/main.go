// Comando migrate: aplica o revierte las migraciones SQL embebidas.
//
//	go run ./cmd/migrate up        aplica todas las pendientes
//	go run ./cmd/migrate down [n]  revierte n migraciones (1 por defecto)
//	go run ./cmd/migrate status    lista las pendientes
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/infrastructure/postgres"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/pkg/config"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: cfg.App.Name + "-migrate"})

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate up|down [n]|status")
		os.Exit(2)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name+"-migrate")
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	switch os.Args[1] {
	case "up":
		n, err := postgres.Migrate(ctx, pool, postgres.MigrateUp, 0)
		if err != nil {
			log.Fatal().Err(err).Msg("migrate up")
		}
		log.Info().Int("applied", n).Msg("migraciones aplicadas")
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			if steps, err = strconv.Atoi(os.Args[2]); err != nil || steps < 1 {
				log.Fatal().Str("arg", os.Args[2]).Msg("n debe ser un entero positivo")
			}
		}
		n, err := postgres.Migrate(ctx, pool, postgres.MigrateDown, steps)
		if err != nil {
			log.Fatal().Err(err).Msg("migrate down")
		}
		log.Info().Int("reverted", n).Msg("migraciones revertidas")
	case "status":
		pending, err := postgres.PendingMigrations(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migrate status")
		}
		if len(pending) == 0 {
			log.Info().Msg("sin migraciones pendientes")
			return
		}
		for _, id := range pending {
			log.Info().Str("id", id).Msg("pendiente")
		}
	default:
		fmt.Fprintf(os.Stderr, "comando desconocido %q\n", os.Args[1])
		os.Exit(2)
	}
}
