package cli

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"runtime"

	"github.com/example/psyhunter/internal/config"
	"github.com/example/psyhunter/internal/profile"
	"github.com/example/psyhunter/internal/sentiment"
	"github.com/spf13/cobra"
)

type doctorCheck struct {
	Name   string
	Status string // "✓", "✗" or "⊘"
	Detail string
	Error  error
}

func newDoctorCmd(loader *config.Loader) *cobra.Command {
	flags := &runtimeFlagSet{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration, inputs, lexicon and dashboard address",
		Long: `The doctor subcommand performs validation of the psyhunter environment:
- Go runtime version
- Configuration validity
- Sentiment lexicon
- Readability of the post-list profile and digital trace
- Availability of the dashboard listen address
- Summary file directory (if configured)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loader.Load(flags.toOverrides(cmd))
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			checks := runDoctorChecks(&cfg)
			printDoctorReport(cmd, checks)

			for _, check := range checks {
				if check.Error != nil {
					return fmt.Errorf("doctor checks failed")
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), "\n✓ All checks passed. System is ready.")
			return nil
		},
	}

	bindRuntimeFlags(cmd, flags)
	bindListenFlag(cmd, flags)

	return cmd
}

func runDoctorChecks(cfg *config.RuntimeConfig) []doctorCheck {
	return []doctorCheck{
		checkGoVersion(),
		checkConfiguration(cfg),
		checkLexicon(),
		checkInput("Profile", cfg.ProfilePath, profile.LoadPosts),
		checkInput("Digital Trace", cfg.TracePath, profile.LoadTrace),
		checkListenAddr(cfg.ListenAddr),
		checkSummaryDir(cfg.SummaryFile),
	}
}

func checkGoVersion() doctorCheck {
	return doctorCheck{
		Name:   "Go Runtime",
		Status: "✓",
		Detail: fmt.Sprintf("Version %s", runtime.Version()),
	}
}

func checkConfiguration(cfg *config.RuntimeConfig) doctorCheck {
	if err := cfg.Validate(); err != nil {
		return doctorCheck{
			Name:   "Configuration",
			Status: "✗",
			Detail: "Invalid configuration",
			Error:  err,
		}
	}

	return doctorCheck{
		Name:   "Configuration",
		Status: "✓",
		Detail: fmt.Sprintf("policies=%v, format=%s", cfg.Policies, cfg.Format),
	}
}

func checkLexicon() doctorCheck {
	lex, err := sentiment.Default()
	if err != nil {
		return doctorCheck{Name: "Sentiment Lexicon", Status: "✗", Detail: "Failed to load", Error: err}
	}
	return doctorCheck{Name: "Sentiment Lexicon", Status: "✓", Detail: fmt.Sprintf("%d words", lex.Size())}
}

// checkInput reports a missing input file as skipped; only a malformed one fails.
func checkInput(name, path string, load func(string) (profile.TargetProfile, error)) doctorCheck {
	p, err := load(path)
	switch {
	case err == nil:
		return doctorCheck{Name: name, Status: "✓", Detail: fmt.Sprintf("%s (%s, %d samples)", path, p.DisplayName, len(p.Samples))}
	case errors.Is(err, profile.ErrInputFileMissing):
		return doctorCheck{Name: name, Status: "⊘", Detail: fmt.Sprintf("%s not found (run psyhunter init)", path)}
	default:
		return doctorCheck{Name: name, Status: "✗", Detail: path, Error: err}
	}
}

func checkListenAddr(addr string) doctorCheck {
	if err := config.ValidateListenAddr(addr); err != nil {
		return doctorCheck{Name: "Dashboard Address", Status: "✗", Detail: addr, Error: err}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return doctorCheck{Name: "Dashboard Address", Status: "✗", Detail: fmt.Sprintf("%s in use", addr), Error: err}
	}
	_ = ln.Close()

	return doctorCheck{Name: "Dashboard Address", Status: "✓", Detail: fmt.Sprintf("%s available", addr)}
}

func checkSummaryDir(summaryFile string) doctorCheck {
	if summaryFile == "" {
		return doctorCheck{Name: "Summary Directory", Status: "⊘", Detail: "No summary file configured"}
	}

	dir := filepath.Dir(summaryFile)
	if err := ensureOutputDir(dir); err != nil {
		return doctorCheck{Name: "Summary Directory", Status: "✗", Detail: dir, Error: err}
	}

	return doctorCheck{Name: "Summary Directory", Status: "✓", Detail: dir}
}

func printDoctorReport(cmd *cobra.Command, checks []doctorCheck) {
	fmt.Fprintln(cmd.OutOrStdout(), "Running environment diagnostics...")

	for _, check := range checks {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %-30s %s\n", check.Status, check.Name+":", check.Detail)
		if check.Error != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "   Error: %v\n", check.Error)
		}
	}
}
