package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"discauthor/internal/config"
	"discauthor/internal/history"
	"discauthor/internal/logging"
	"discauthor/internal/services"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
			if err := cfg.Validate(); err != nil {
				c.configErr = services.Wrap(services.ErrConfiguration, "config", "log-level", "", err)
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "directories", "", err)
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// ensureLogger builds the logger from configuration and prunes expired log
// files once per process.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = services.Wrap(services.ErrConfiguration, "logging", "init", "", err)
			return
		}
		logging.CleanupOldLogs(logger, cfg.Paths.LogDir, "*.log", cfg.Logging.RetentionDays, cfg.LogPath())
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// openHistory opens the build history database. It returns nil without an
// error when history is disabled. Callers close the store.
func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open build history: %w", err)
	}
	return store, nil
}

// outputPaths returns the document path and dvdauthor destination for a
// project, honouring explicit flag values.
func (c *commandContext) outputPaths(projectName, outputFlag, destFlag string) (string, string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", "", err
	}
	output := strings.TrimSpace(outputFlag)
	switch {
	case output == "-":
	case output == "":
		output = filepath.Join(cfg.Paths.OutputDir, documentName(projectName))
	default:
		output, err = config.ExpandPath(output)
		if err != nil {
			return "", "", fmt.Errorf("resolve output path: %w", err)
		}
	}
	dest := strings.TrimSpace(destFlag)
	if dest == "" {
		dest = filepath.Join(cfg.Paths.OutputDir, destName(projectName))
	} else {
		dest, err = config.ExpandPath(dest)
		if err != nil {
			return "", "", fmt.Errorf("resolve dest path: %w", err)
		}
	}
	return output, dest, nil
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
