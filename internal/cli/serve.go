package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yukiacerium/socialmem/internal/config"
	"github.com/yukiacerium/socialmem/internal/engine"
	"github.com/yukiacerium/socialmem/internal/logging"
	"github.com/yukiacerium/socialmem/internal/metrics"
	"github.com/yukiacerium/socialmem/internal/server"
	"github.com/yukiacerium/socialmem/internal/store"
	badgerstore "github.com/yukiacerium/socialmem/internal/store/badger"
	memorystore "github.com/yukiacerium/socialmem/internal/store/memory"
	redisstore "github.com/yukiacerium/socialmem/internal/store/redis"
	sqlitestore "github.com/yukiacerium/socialmem/internal/store/sqlite"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to config file (yaml or json)")
}

// openStore builds the profile store selected by the configuration.
func openStore(cfg config.StorageConfig) (store.ProfileStore, string, error) {
	switch cfg.Backend {
	case "memory":
		return memorystore.New(), "memory", nil

	case "sqlite":
		path := cfg.Path
		if path == "" {
			var err error
			path, err = sqlitestore.DefaultPath()
			if err != nil {
				return nil, "", fmt.Errorf("resolve db path: %w", err)
			}
		}
		st, err := sqlitestore.Open(path)
		if err != nil {
			return nil, "", err
		}
		return st, "sqlite (" + path + ")", nil

	case "badger":
		path := cfg.Path
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, "", fmt.Errorf("resolve badger path: %w", err)
			}
			path = home + "/.socialmem/badger"
		}
		st, err := badgerstore.Open(badgerstore.Config{Path: path, SyncWrites: true})
		if err != nil {
			return nil, "", err
		}
		return st, "badger (" + path + ")", nil

	case "redis":
		st, err := redisstore.Open(context.Background(), redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, "", err
		}
		return st, "redis (" + cfg.Redis.Addr + ")", nil
	}

	return nil, "", fmt.Errorf("unknown storage backend: %s", cfg.Backend)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}

	log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	st, desc, err := openStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eng := engine.New(st, cfg.Social, log)
	m := metrics.New()
	srv := server.New(eng, m, log, VersionString())

	addr := cfg.ListenAddr()
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("socialmem serving", "addr", addr, "store", desc)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
