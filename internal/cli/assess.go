package cli

import (
	"github.com/example/psyhunter/internal/config"
	"github.com/example/psyhunter/internal/profile"
	"github.com/example/psyhunter/internal/scoring"
	"github.com/spf13/cobra"
)

func newAssessCmd(loader *config.Loader) *cobra.Command {
	flags := &runtimeFlagSet{}

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score a digital trace with the weighted risk library",
		Long: `assess runs the dashboard scoring policy without starting the web session.
The digital trace is read from --trace (default digital_trace.json).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, loader, flags)
			if err != nil {
				return err
			}

			return runPipeline(cmd, cfg, pipeline{
				policies: []string{scoring.PolicyDashboard},
				source:   cfg.TracePath,
				load:     profile.LoadTrace,
			})
		},
	}

	bindRuntimeFlags(cmd, flags)

	return cmd
}
