package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/example/psyhunter/internal/config"
	"github.com/example/psyhunter/internal/logger"
	"github.com/spf13/cobra"
)

func ensureOutputDir(path string) error {
	if path == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	return os.MkdirAll(path, 0o755)
}

// loadConfig resolves and validates the runtime config for cmd.
func loadConfig(cmd *cobra.Command, loader *config.Loader, flags *runtimeFlagSet) (config.RuntimeConfig, error) {
	cfg, err := loader.Load(flags.toOverrides(cmd))
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger sends diagnostics to stderr so stdout stays machine readable.
func newLogger(cmd *cobra.Command, cfg config.RuntimeConfig) *slog.Logger {
	return logger.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
}

func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := ensureOutputDir(dir); err != nil {
			return err
		}
	}

	return os.WriteFile(path, append(data, '\n'), 0o644)
}
