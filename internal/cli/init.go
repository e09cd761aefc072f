package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/psyhunter/internal/config"
	"github.com/spf13/cobra"
)

const samplePosts = `{
  "real_name": "Jordan Vale",
  "recent_posts": [
    {"text": "Another weekend working. Total exhaustion, I need a break."},
    {"text": "Still waiting to get paid for last month, the bills keep piling up."},
    {"text": "Manager wants me to fix this tonight. So tired."}
  ]
}
`

const sampleTrace = `{
  "target_id": "T-0001",
  "username": "jvale",
  "digital_footprint": "So tired of this deadline. Lost money on crypto again and the bank wants the loan payment asap."
}
`

const sampleConfig = `# psyhunter configuration. Environment variables (PSYHUNTER_*) and flags override these values.
profile: target_data.json
trace: digital_trace.json
policies:
  - console
format: text
listen: 127.0.0.1:8501
log:
  level: info
  format: text
`

type sampleFile struct {
	name    string
	content string
}

func newInitCmd(loader *config.Loader) *cobra.Command {
	var dir string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write sample input files and a starter configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureOutputDir(dir); err != nil {
				return err
			}

			files := []sampleFile{
				{name: "target_data.json", content: samplePosts},
				{name: "digital_trace.json", content: sampleTrace},
				{name: filepath.Base(config.DefaultConfigPath), content: sampleConfig},
			}

			for _, f := range files {
				path := filepath.Join(dir, f.name)
				if _, err := os.Stat(path); err == nil && !force {
					fmt.Fprintf(cmd.OutOrStdout(), "skip   %s (exists, use --force to overwrite)\n", path)
					continue
				}
				if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote  %s\n", path)
			}

			cfgPath := filepath.Join(dir, filepath.Base(config.DefaultConfigPath))
			check := config.Loader{ConfigPath: cfgPath, EnvFile: loader.EnvFile}
			cfg, err := check.Load(config.Overrides{})
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Workspace ready in %s. Run `psyhunter scan` or `psyhunter assess` from there.\n", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to write the sample files into")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}
