package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	invitekit "github.com/goliatone/go-invitekit"
	"github.com/goliatone/go-invitekit/internal/tui"
	"github.com/goliatone/go-invitekit/pkg/catalog"
	"github.com/goliatone/go-invitekit/pkg/draft"
	"github.com/goliatone/go-invitekit/pkg/kv"
	"github.com/goliatone/go-invitekit/pkg/render"
	"github.com/goliatone/go-invitekit/pkg/session"
	"github.com/goliatone/go-invitekit/pkg/store/gormstore"
	"github.com/goliatone/go-invitekit/pkg/store/memory"
)

func main() {
	_ = godotenv.Load()

	templateSlug := flag.String("template", "", "template slug to author against (prompted if empty)")
	previewOut := flag.String("preview", "", "write the HTML preview to this file at the review step")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log := newLogger(*debug)
	defer log.Sync()

	ctx := context.Background()
	driver := tui.NewSurveyDriver()

	catalogReg := invitekit.BuiltinCatalog()
	resolver, err := invitekit.NewResolver(catalogReg, render.ModeDevelopment)
	if err != nil {
		log.Fatal("build resolver", zap.Error(err))
	}

	slug := *templateSlug
	if slug == "" {
		slug, err = pickTemplate(ctx, driver, catalogReg)
		if err != nil {
			exitOnPromptErr(err, log)
		}
	}

	store, err := openStore(log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}

	prefs := openPrefs()
	if _, seen := prefs.Get("hint:preview"); !seen && *previewOut == "" {
		fmt.Fprintln(os.Stderr, "Tip: pass -preview out.html to write an HTML preview at the review step.")
		prefs.Set("hint:preview", "shown")
	}

	sess, err := invitekit.NewSession(catalogReg, slug,
		session.WithStore(store),
		session.WithResolver(resolver),
		session.WithKV(prefs),
		session.WithLogger(log),
		session.WithOnNotice(func(msg string) {
			fmt.Fprintln(os.Stderr, msg)
		}),
	)
	if err != nil {
		log.Fatal("start session", zap.Error(err))
	}
	defer sess.Close()

	w := &wizardUI{
		driver:     driver,
		session:    sess,
		previewOut: *previewOut,
		log:        log,
	}
	if err := w.Run(ctx); err != nil {
		exitOnPromptErr(err, log)
	}
}

func newLogger(debug bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	return log
}

// openStore uses Postgres when INVITEKIT_DATABASE_URL is set, otherwise an
// in-memory store good enough for trying templates out.
func openStore(log *zap.Logger) (draft.Store, error) {
	dsn := strings.TrimSpace(os.Getenv("INVITEKIT_DATABASE_URL"))
	if dsn == "" {
		log.Debug("no database configured, using the in-memory store")
		return memory.New(), nil
	}
	return gormstore.Open(dsn)
}

// openPrefs stores CLI preferences and wizard resume positions under the
// user's config directory, falling back to in-memory when unavailable.
func openPrefs() kv.Store {
	dir, err := os.UserConfigDir()
	if err != nil {
		return kv.NewMemory()
	}
	if err := os.MkdirAll(filepath.Join(dir, "invitekit"), 0o700); err != nil {
		return kv.NewMemory()
	}
	return kv.NewFile(filepath.Join(dir, "invitekit", "prefs.yaml"))
}

func pickTemplate(ctx context.Context, driver tui.PromptDriver, reg *catalog.Registry) (string, error) {
	slugs := reg.Slugs()
	idx, err := driver.Select(ctx, tui.SelectConfig{
		Message: "Which template?",
		Options: slugs,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(slugs) {
		return "", fmt.Errorf("no template selected")
	}
	return slugs[idx], nil
}

func exitOnPromptErr(err error, log *zap.Logger) {
	if err == nil {
		return
	}
	if err == tui.ErrAborted {
		fmt.Fprintln(os.Stderr, "Aborted.")
		os.Exit(130)
	}
	log.Fatal("wizard failed", zap.Error(err))
}
