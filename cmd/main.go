package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/ConsultoriaImpulso/ZBE/internal/config"
	"github.com/ConsultoriaImpulso/ZBE/internal/datex"
	"github.com/ConsultoriaImpulso/ZBE/internal/dgt"
	"github.com/ConsultoriaImpulso/ZBE/internal/export"
	"github.com/ConsultoriaImpulso/ZBE/internal/logger"
	"github.com/ConsultoriaImpulso/ZBE/internal/server"
	"github.com/ConsultoriaImpulso/ZBE/internal/store"
)

var (
	configPath string
	outDir     string
	mode       string
	serve      bool
	port       string
	interval   time.Duration
)

func main() {
	flag.StringVar(&configPath, "config", "", "path to a JSON sources file")
	flag.StringVar(&outDir, "out", "", "output directory for the generated files")
	flag.StringVar(&mode, "mode", "", "ring extraction mode: flat or grouped")
	flag.BoolVar(&serve, "serve", false, "serve the generated collections over HTTP")
	flag.StringVar(&port, "p", "8080", "the port the server should listen on")
	flag.DurationVar(&interval, "interval", time.Hour, "refresh interval in serve mode")
	flag.Parse()

	_ = godotenv.Load(".env")
	l := logger.Setup()

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			l.Error("failed loading config", "path", configPath, "err", err)
			os.Exit(1)
		}
	}
	cfg = config.FromEnv(cfg)
	if outDir != "" {
		cfg.OutDir = outDir
	}
	if mode != "" {
		cfg.Mode = mode
	}

	m, err := datex.ParseMode(cfg.Mode)
	if err != nil {
		l.Error("invalid mode", "err", err)
		os.Exit(1)
	}

	exports := export.New(dgt.DefaultClient, &export.Writer{OutDir: cfg.OutDir})
	exports.Logger = l
	exports.Mode = m

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			l.Error("failed opening database", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		exports.Store = store.New(db)
	}

	if serve {
		srv := server.Server{
			Addr:     port,
			Router:   chi.NewRouter(),
			Interval: interval,
			Logger:   l,
			Exports:  exports,
			Sources:  cfg.Sources,
			OutDir:   cfg.OutDir,
		}
		if err := srv.Start(); err != nil {
			l.Error("server stopped", "err", err)
			os.Exit(1)
		}
		return
	}

	if _, err := exports.Run(context.Background(), cfg.Sources); err != nil {
		l.Error("export failed", "err", err)
		os.Exit(1)
	}

	fmt.Println("GeoJSON generated successfully.")
}
