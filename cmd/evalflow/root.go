package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spacesedan/evalflow/config"
	"github.com/spacesedan/evalflow/internal/cache"
	"github.com/spacesedan/evalflow/internal/clients"
	"github.com/spacesedan/evalflow/internal/logging"
	"github.com/spacesedan/evalflow/internal/report"
)

// app carries what every command needs after startup. A fresh one is built
// per root command.
type app struct {
	env     string
	asJSON  bool
	noCache bool

	settings config.Settings
	cache    cache.Cache
	valkey   *clients.ValkeyClient
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "evalflow",
		Short: "Explore student evaluations, Riemann sums and sales data",
		Long: `evalflow recodes student evaluation sheets into numeric scores and
tagged observations, approximates integrals with Riemann sums, and
summarizes sales sheets.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.start(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.stop()
		},
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	root.PersistentFlags().StringVar(&a.env, "env", env, "environment file to load from config/envs")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print results as JSON")
	root.PersistentFlags().BoolVar(&a.noCache, "no-cache", false, "always re-parse data files")

	root.AddCommand(
		newEvaluationsCmd(a),
		newRiemannCmd(a),
		newFunctionsCmd(a),
		newSalesCmd(a),
	)
	return root
}

func (a *app) start(ctx context.Context) error {
	config.LoadEnv(a.env)
	settings, err := config.Load()
	if err != nil {
		return err
	}
	a.settings = settings
	logging.InitLogger(settings.LogLevel)

	switch {
	case a.noCache:
		a.cache = cache.Nop{}
	case settings.CacheBackend == config.CacheBackendMemory:
		a.cache = cache.NewMemory()
	case settings.CacheBackend == config.CacheBackendValkey:
		vc, err := clients.NewValkeyClient(clients.ValkeyOptions{
			Address:  settings.ValkeyAddress,
			Password: settings.ValkeyPassword,
			UseTLS:   settings.ValkeyTLS,
		})
		if err != nil {
			slog.Warn("[CLI] valkey unavailable, caching disabled", slog.String("error", err.Error()))
			a.cache = cache.Nop{}
			return nil
		}
		a.valkey = vc
		a.cache = cache.NewValkey(vc, settings.CacheTTL)
	default:
		a.cache = cache.Nop{}
	}
	return nil
}

func (a *app) stop() {
	if a.valkey != nil {
		a.valkey.Close()
	}
}

// render prints v as JSON when --json is set and calls text otherwise.
func (a *app) render(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if a.asJSON {
		return report.JSON(w, v)
	}
	text(w)
	return nil
}
