package main

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/homeprice/internal/artifact"
	"github.com/ekisa-team/homeprice/internal/config"
	"github.com/ekisa-team/homeprice/internal/env"
	"github.com/ekisa-team/homeprice/internal/estimator"
	"github.com/ekisa-team/homeprice/internal/logger"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "homeprice",
		Short:         "Home price estimates from a trained regression model",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c",
		filepath.Join(config.DefaultConfigPath(), "config.yaml"), "Path to config file")

	so := &serveOptions{}
	serve := newServeCmd(opts, so)
	root.AddCommand(serve, newLocationsCmd(opts), newPredictCmd(opts))
	root.RunE = serve.RunE
	so.bindFlags(root)

	return root
}

// setup loads the config and installs the default logger.
func setup(opts *rootOptions, level *slog.Level) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	lvl := logger.ParseLevel(cfg.Logging.Level)
	if level != nil {
		lvl = *level
	}

	slog.SetDefault(
		logger.New(env.FromEnv(),
			logger.WithLevel(lvl),
			logger.WithLogToFile(cfg.Logging.File != ""),
			logger.WithLogFile(cfg.Logging.File),
		),
	)

	return cfg, nil
}

// loadEstimator builds an estimator and loads the configured artifacts.
func loadEstimator(cfg *config.Config, opts ...estimator.Option) (*estimator.Estimator, artifact.Paths, error) {
	est, err := estimator.New(opts...)
	if err != nil {
		return nil, artifact.Paths{}, err
	}

	paths := artifact.PathsFromConfig(cfg.Artifacts)
	if err := est.Load(paths); err != nil {
		return nil, paths, err
	}

	return est, paths, nil
}
