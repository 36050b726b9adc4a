package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	invitekit "github.com/goliatone/go-invitekit"
	"github.com/goliatone/go-invitekit/pkg/render"
)

// Config holds the server's environment-driven settings.
type Config struct {
	Addr        string `env:"INVITEKIT_ADDR" envDefault:":3000"`
	DatabaseURL string `env:"INVITEKIT_DATABASE_URL"`
	Debug       bool   `env:"INVITEKIT_DEBUG"`
}

func main() {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "parse env: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	catalogReg := invitekit.BuiltinCatalog()
	resolver, err := invitekit.NewResolver(catalogReg, render.ModeProduction)
	if err != nil {
		log.Fatal("build resolver", zap.Error(err))
	}

	store, err := openStore(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}

	srv := NewServer(catalogReg, resolver, store, log)
	log.Info("listening", zap.String("addr", cfg.Addr))
	if err := srv.Listen(cfg.Addr); err != nil {
		log.Fatal("serve", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
