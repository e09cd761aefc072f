package cli

import (
	"github.com/example/psyhunter/internal/config"
	"github.com/example/psyhunter/internal/dashboard"
	"github.com/example/psyhunter/internal/logger"
	"github.com/example/psyhunter/internal/sentiment"
	"github.com/spf13/cobra"
)

func newDashboardCmd(loader *config.Loader) *cobra.Command {
	flags := &runtimeFlagSet{}

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Start the local behavioural risk dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, loader, flags)
			if err != nil {
				return err
			}

			analyzer, err := sentiment.Default()
			if err != nil {
				return err
			}

			log := logger.Init(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			srv, err := dashboard.New(dashboard.Options{
				Analyzer:  analyzer,
				TracePath: cfg.TracePath,
				Logger:    log,
			})
			if err != nil {
				return err
			}

			return srv.ListenAndServe(cmd.Context(), cfg.ListenAddr)
		},
	}

	bindTraceFlag(cmd, flags)
	bindListenFlag(cmd, flags)
	bindLogFlags(cmd, flags)

	return cmd
}
