package main

import (
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jhoicas/pasteleria-api/pkg/config"
	"github.com/jhoicas/pasteleria-api/pkg/logger"
)

// Aplica las migraciones de migrations/ contra la base configurada.
// Uso: migrate <up|down|version>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		log.Fatal().Msg("uso: migrate <up|down|version>")
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "file://migrations"
	}

	m, err := migrate.New(migrationsPath, pgxURL(cfg.DB.ConnectionString()))
	if err != nil {
		log.Fatal().Err(err).Msg("crear instancia de migrate")
	}
	defer func() { _, _ = m.Close() }()

	switch args[0] {
	case "up":
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("sin migraciones pendientes")
			return
		}
		if err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Msg("migraciones aplicadas")

	case "down":
		err = m.Steps(-1)
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("nada que revertir")
			return
		}
		if err != nil {
			log.Fatal().Err(err).Msg("revertir migración")
		}
		log.Info().Msg("migración revertida")

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info().Msg("sin migraciones aplicadas todavía")
			return
		}
		if err != nil {
			log.Fatal().Err(err).Msg("consultar versión")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("versión actual")

	default:
		log.Fatal().Str("command", args[0]).Msg("comando desconocido")
	}
}

// pgxURL reescribe el esquema del DSN al del driver pgx/v5 de migrate.
func pgxURL(dsn string) string {
	if strings.HasPrefix(dsn, "postgresql://") {
		return "pgx5://" + strings.TrimPrefix(dsn, "postgresql://")
	}
	if strings.HasPrefix(dsn, "postgres://") {
		return "pgx5://" + strings.TrimPrefix(dsn, "postgres://")
	}
	return dsn
}
