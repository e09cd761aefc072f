package cli

import (
	"context"

	"github.com/example/psyhunter/internal/config"
	"github.com/spf13/cobra"
)

// Execute builds the root command tree and runs the CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	loader := &config.Loader{ConfigPath: config.DefaultConfigPath, EnvFile: config.DefaultEnvFile}
	rootOpts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "psyhunter",
		Short:         "Behavioural risk scoring for social media footprints",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	rootCmd.SetVersionTemplate("psyhunter version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&rootOpts.ConfigPath, "config", config.DefaultConfigPath, "Path to psyhunter.yml (optional)")
	rootCmd.PersistentFlags().StringVar(&rootOpts.EnvFile, "env-file", config.DefaultEnvFile, "Path to a dotenv file (optional)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if rootOpts.ConfigPath != "" {
			loader.ConfigPath = rootOpts.ConfigPath
		}
		if rootOpts.EnvFile != "" {
			loader.EnvFile = rootOpts.EnvFile
		}
	}

	rootCmd.AddCommand(
		newScanCmd(loader),
		newAssessCmd(loader),
		newDashboardCmd(loader),
		newReportCmd(),
		newInitCmd(loader),
		newDoctorCmd(loader),
	)

	return rootCmd
}

type rootOptions struct {
	ConfigPath string
	EnvFile    string
}
