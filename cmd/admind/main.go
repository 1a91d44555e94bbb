package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"admind/internal/audit"
	"admind/internal/common/fsutil"
	"admind/internal/config"
	"admind/internal/console"
	"admind/internal/httpapi"
	"admind/internal/notify"
	"admind/internal/upstream"
)

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}

func buildServeCmd() *cobra.Command {
	var (
		cfgPath         string
		addr            string
		upstreamURL     string
		upstreamToken   string
		upstreamTimeout int
		refreshInterval int
		autoRefresh     bool
		auditDB         string
		logLevel        string
		corsEnabled     bool
		corsOrigins     []string
	)

	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Run the admin console daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Config file values fill in anything the flags left at defaults.
			if cfgPath != "" {
				fileCfg, err := config.Load(cfgPath)
				if err != nil {
					return fmt.Errorf("load config %s: %w", cfgPath, err)
				}
				if !cmd.Flags().Changed("addr") && fileCfg.Addr != "" {
					addr = fileCfg.Addr
				}
				if !cmd.Flags().Changed("upstream-url") && fileCfg.UpstreamBaseURL != "" {
					upstreamURL = fileCfg.UpstreamBaseURL
				}
				if !cmd.Flags().Changed("upstream-token") && fileCfg.UpstreamToken != "" {
					upstreamToken = fileCfg.UpstreamToken
				}
				if !cmd.Flags().Changed("upstream-timeout-sec") && fileCfg.UpstreamTimeoutSec > 0 {
					upstreamTimeout = fileCfg.UpstreamTimeoutSec
				}
				if !cmd.Flags().Changed("refresh-interval-sec") && fileCfg.RefreshIntervalSec > 0 {
					refreshInterval = fileCfg.RefreshIntervalSec
				}
				if !cmd.Flags().Changed("auto-refresh") && fileCfg.AutoRefresh != nil {
					autoRefresh = *fileCfg.AutoRefresh
				}
				if !cmd.Flags().Changed("audit-db") && fileCfg.AuditDB != "" {
					auditDB = fileCfg.AuditDB
				}
				if !cmd.Flags().Changed("log-level") && fileCfg.LogLevel != "" {
					logLevel = fileCfg.LogLevel
				}
				if !cmd.Flags().Changed("cors") && fileCfg.CORSEnabled {
					corsEnabled = true
				}
				if !cmd.Flags().Changed("cors-origin") && len(fileCfg.CORSOrigins) > 0 {
					corsOrigins = fileCfg.CORSOrigins
				}
			}

			log := newLogger(logLevel)

			if upstreamURL == "" {
				return fmt.Errorf("upstream base URL is required (--upstream-url or ADMIND_UPSTREAM_URL)")
			}

			backend, err := upstream.New(upstream.Config{
				BaseURL: upstreamURL,
				Token:   upstreamToken,
				Timeout: time.Duration(upstreamTimeout) * time.Second,
				Logger:  log.With().Str("component", "upstream").Logger(),
			})
			if err != nil {
				return err
			}

			var auditStore audit.Store
			if auditDB != "" {
				path, err := fsutil.ExpandHome(auditDB)
				if err != nil {
					return fmt.Errorf("audit db path: %w", err)
				}
				store, err := audit.OpenSQLite(path)
				if err != nil {
					return fmt.Errorf("open audit db: %w", err)
				}
				defer store.Close()
				auditStore = store
				log.Info().Str("path", path).Msg("audit trail on sqlite")
			} else {
				auditStore = audit.NewMemoryStore()
				log.Warn().Msg("audit trail in memory only; set --audit-db to persist")
			}

			center := notify.NewCenter(nil)
			notifier := notify.NewNotifier(center)

			cons, err := console.New(console.Config{
				Backend:         backend,
				Notifier:        notifier,
				Audit:           auditStore,
				Logger:          log.With().Str("component", "console").Logger(),
				AutoRefresh:     autoRefresh,
				RefreshInterval: time.Duration(refreshInterval) * time.Second,
			})
			if err != nil {
				return err
			}

			baseCtx, cancelBase := context.WithCancel(context.Background())
			defer cancelBase()

			httpapi.SetLogger(log.With().Str("component", "http").Logger())
			httpapi.SetBaseContext(baseCtx)
			if corsEnabled {
				httpapi.SetCORSOptions(true, corsOrigins,
					[]string{"GET", "POST", "DELETE", "OPTIONS"},
					[]string{"Accept", "Authorization", "Content-Type"})
			}

			cons.Activate(baseCtx)
			defer cons.Deactivate()

			mux := httpapi.NewMux(cons, center)
			srv := &http.Server{Addr: addr, Handler: mux}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", addr).Str("upstream", upstreamURL).Msg("admind listening")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-stop:
				log.Info().Str("signal", sig.String()).Msg("shutting down")
			case err := <-errCh:
				return err
			}

			cancelBase()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Error().Err(err).Msg("graceful shutdown")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", envStr("ADMIND_CONFIG", ""), "Config file (.yaml/.json/.toml)")
	cmd.Flags().StringVar(&addr, "addr", envStr("ADMIND_ADDR", ":8090"), "HTTP listen address, e.g. :8090")
	cmd.Flags().StringVar(&upstreamURL, "upstream-url", envStr("ADMIND_UPSTREAM_URL", ""), "Records backend base URL")
	cmd.Flags().StringVar(&upstreamToken, "upstream-token", envStr("ADMIND_UPSTREAM_TOKEN", ""), "Bearer token for the records backend")
	cmd.Flags().IntVar(&upstreamTimeout, "upstream-timeout-sec", envInt("ADMIND_UPSTREAM_TIMEOUT_SEC", 15), "Upstream request timeout in seconds")
	cmd.Flags().IntVar(&refreshInterval, "refresh-interval-sec", envInt("ADMIND_REFRESH_INTERVAL_SEC", 30), "Silent auto-refresh interval in seconds")
	cmd.Flags().BoolVar(&autoRefresh, "auto-refresh", envBool("ADMIND_AUTO_REFRESH", true), "Enable periodic silent refresh of resource data")
	cmd.Flags().StringVar(&auditDB, "audit-db", envStr("ADMIND_AUDIT_DB", ""), "SQLite file for the audit trail (empty = in-memory)")
	cmd.Flags().StringVar(&logLevel, "log-level", envStr("ADMIND_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	cmd.Flags().BoolVar(&corsEnabled, "cors", envBool("ADMIND_CORS", false), "Enable CORS for browser consoles on other origins")
	cmd.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable)")

	return cmd
}

func main() {
	// .env is optional; flags and real env still win.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "admind",
		Short:         "Orchestration daemon for the medical-records admin console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(buildServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
