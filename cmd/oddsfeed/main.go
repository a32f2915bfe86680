// Package main provides the entry point for the oddsfeed service.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/oddsfeed/internal/adapters"
	"github.com/yourusername/oddsfeed/internal/config"
	"github.com/yourusername/oddsfeed/internal/database"
	"github.com/yourusername/oddsfeed/internal/espn"
	applogger "github.com/yourusername/oddsfeed/internal/logger"
	"github.com/yourusername/oddsfeed/internal/metrics"
	"github.com/yourusername/oddsfeed/internal/oddsapi"
	"github.com/yourusername/oddsfeed/internal/repository"
	"github.com/yourusername/oddsfeed/internal/scheduler"
	"github.com/yourusername/oddsfeed/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	logger     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	oddsSvc    *service.OddsService
	oddsClient *oddsapi.Client
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:   "oddsfeed",
	Short: "Sports betting odds retrieval and normalization service",
	Long: `Fetches betting odds from sportsbook aggregators, normalizes them into
a canonical game model, and serves comparison and archival workflows.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	// No config needed to print the version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("oddsfeed %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Run the scheduled odds polling service",
	Long: `Starts the background scheduler: a recurring odds fetch at the configured
interval plus a daily full sync, with a metrics endpoint when enabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPollService()
	},
}

func main() {
	rootCmd.AddCommand(pollCmd, fetchCmd, marketsCmd, impliedCmd, parlayCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return config.Validate(cfg)
}

func setupDependencies() error {
	logger = applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	logger.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
	}).Info("oddsfeed starting")

	registry := adapters.NewRegistry(logger)
	logger.WithField("sources", registry.Known()).Debug("adapter registry ready")
	oddsClient = oddsapi.New(oddsapi.Config{
		BaseURL:            cfg.OddsAPI.BaseURL,
		APIKey:             cfg.OddsAPI.APIKey,
		Regions:            cfg.OddsAPI.Regions,
		OddsFormat:         cfg.OddsAPI.OddsFormat,
		RequestTimeout:     cfg.OddsAPI.RequestTimeout(),
		MaxRetries:         cfg.OddsAPI.MaxRetries,
		CacheTTL:           cfg.OddsAPI.CacheTTL(),
		RetryWaitBase:      cfg.OddsAPI.RetryWaitBase(),
		MinRequestInterval: cfg.OddsAPI.MinRequestInterval(),
	}, registry, logger)

	var statsClient service.StatsFetcher
	if cfg.ESPN.Enabled {
		statsClient = espn.New(espn.Config{
			BaseURL:        cfg.ESPN.BaseURL,
			RequestTimeout: cfg.ESPN.RequestTimeout(),
		}, logger)
	}

	var archiver service.Archiver
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var err error
		db, err = database.Initialize(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize archive database: %w", err)
		}
		archiver = repository.NewPostgresOddsRepository(db)
		logger.Info("snapshot archive enabled")
	}

	oddsSvc = service.New(oddsClient, statsClient, archiver, logger)
	return nil
}

func runPollService() error {
	if !cfg.Scheduler.Enabled {
		return fmt.Errorf("scheduler is disabled in configuration")
	}

	sports := parseSports(cfg.Scheduler.Sports)
	betTypes := parseBetTypes(cfg.Scheduler.BetTypes)

	sched := scheduler.NewScheduler(oddsSvc, logger)
	if err := sched.SchedulePolling(cfg.Scheduler.PollingInterval(), sports, betTypes); err != nil {
		return err
	}
	if cfg.Scheduler.DailySync != "" {
		if err := sched.ScheduleDailySync(cfg.Scheduler.DailySync, sports); err != nil {
			return err
		}
	}
	if err := sched.Start(); err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		metrics.Register()
		addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
		go func() {
			if err := metrics.Serve(addr, cfg.Metrics.Path); err != nil {
				logger.WithError(err).Error("metrics server stopped")
			}
		}()
		logger.WithField("addr", addr).Info("metrics endpoint listening")
	}

	logger.WithField("next_run", sched.GetNextRun()).Info("polling service running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	return sched.Stop()
}
