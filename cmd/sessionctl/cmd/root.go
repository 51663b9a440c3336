package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridecircle/sessionkit/authapi"
	"github.com/ridecircle/sessionkit/cache"
	bboltcache "github.com/ridecircle/sessionkit/cache/bbolt"
	"github.com/ridecircle/sessionkit/config"
	"github.com/ridecircle/sessionkit/session"
)

var (
	apiURL    string
	cachePath string
)

var rootCmd = &cobra.Command{
	Use:   "sessionctl",
	Short: "sessionctl drives the ridecircle client session core headlessly",
	Long: `sessionctl exercises the session-resolution engine of the ridecircle
client without a UI: it loads the persisted onboarding/auth signals,
runs the routing state machine, and drives the auth flows against a
real or stub backend.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Auth service base URL (default from SESSIONKIT_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "Session cache file (default from SESSIONKIT_CACHE_PATH)")
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(cfg.LogLevel),
	}))
}

// loadConfig resolves env config and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if cachePath != "" {
		cfg.CachePath = cachePath
	}
	return cfg, nil
}

func openCache(cfg *config.Config) (cache.Cache, error) {
	store, err := bboltcache.NewFromFile(cfg.CachePath, nil)
	if err != nil {
		return nil, fmt.Errorf("opening session cache: %w", err)
	}
	return store, nil
}

// printNavigator renders routing decisions to stdout, standing in for
// the mobile shell's replace-navigation.
var printNavigator = session.NavigatorFunc(func(d session.Decision) {
	if d.Email != "" {
		fmt.Printf("-> %s (email=%s)\n", d.Target, d.Email)
		return
	}
	fmt.Printf("-> %s\n", d.Target)
})

// newController builds the full session stack from config.
func newController(cfg *config.Config) (*session.Controller, func(), error) {
	store, err := openCache(cfg)
	if err != nil {
		return nil, nil, err
	}
	client := authapi.New(cfg.APIBaseURL, authapi.WithTimeout(cfg.HTTPTimeout))
	ctrl := session.NewController(store, client, printNavigator,
		session.WithLogger(newLogger(cfg)),
		session.WithGuardReset(cfg.GuardReset),
	)
	cleanup := func() {
		ctrl.Close()
		store.Close()
	}
	return ctrl, cleanup, nil
}
