package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tracklink/internal/config"
	"tracklink/internal/importer"
	"tracklink/internal/library"
	"tracklink/internal/logging"
	"tracklink/internal/matchcache"
	"tracklink/internal/musicbrainz"
	"tracklink/internal/spotify"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	jsonFlag     *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		jsonFlag:     jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// JSONMode reports whether --json was given.
func (c *commandContext) JSONMode() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) cliLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) openLibrary() (*library.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := library.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	return store, nil
}

func (c *commandContext) openMatchCache() (*matchcache.Cache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.MatchCache.Enabled {
		return nil, nil
	}
	logger, err := c.cliLogger()
	if err != nil {
		return nil, err
	}
	return matchcache.NewCache(cfg.MatchCache.Path, logger), nil
}

// newImporter wires the catalog client, optional image provider, and match
// cache. store may be nil for commands that never persist.
func (c *commandContext) newImporter(ctx context.Context, store importer.Library) (*importer.Importer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.cliLogger()
	if err != nil {
		return nil, err
	}

	catalog, err := musicbrainz.NewFromConfig(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("catalog client: %w", err)
	}
	opts := []importer.Option{importer.WithLogger(logger)}

	images, err := spotify.NewFromConfig(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("spotify client: %w", err)
	}
	if images != nil {
		opts = append(opts, importer.WithImageProvider(images))
	}

	cache, err := c.openMatchCache()
	if err != nil {
		return nil, err
	}
	if cache != nil {
		opts = append(opts, importer.WithMatchCache(cache))
	}
	return importer.New(cfg, catalog, store, opts...), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
