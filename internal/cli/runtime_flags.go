package cli

import (
	"github.com/example/psyhunter/internal/config"
	"github.com/spf13/cobra"
)

// runtimeFlagSet tracks shared flags before they are converted into config overrides.
type runtimeFlagSet struct {
	profile     string
	trace       string
	policies    string
	format      string
	summaryFile string
	listen      string
	noColor     bool
	logLevel    string
	logFormat   string
}

func bindRuntimeFlags(cmd *cobra.Command, flags *runtimeFlagSet) {
	cmd.Flags().StringVar(&flags.profile, "profile", "", "Path to the post-list profile JSON (real_name, recent_posts)")
	bindTraceFlag(cmd, flags)
	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: text, json, or ndjson")
	cmd.Flags().StringVar(&flags.summaryFile, "summary-file", "", "Optional path to store the results as JSON")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable coloured output")
	bindLogFlags(cmd, flags)
}

func bindTraceFlag(cmd *cobra.Command, flags *runtimeFlagSet) {
	cmd.Flags().StringVar(&flags.trace, "trace", "", "Path to the digital trace JSON (username/target_id, digital_footprint)")
}

func bindLogFlags(cmd *cobra.Command, flags *runtimeFlagSet) {
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, or error")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")
}

func bindPolicyFlag(cmd *cobra.Command, flags *runtimeFlagSet) {
	cmd.Flags().StringVar(&flags.policies, "policies", "", "Comma-separated scoring policies to run (console,dashboard)")
}

func bindListenFlag(cmd *cobra.Command, flags *runtimeFlagSet) {
	cmd.Flags().StringVar(&flags.listen, "listen", "", "Loopback address for the dashboard (host:port)")
}

func (f runtimeFlagSet) toOverrides(cmd *cobra.Command) config.Overrides {
	ov := config.Overrides{}
	if cmd.Flags().Changed("profile") {
		ov.ProfilePath = f.profile
	}

	if cmd.Flags().Changed("trace") {
		ov.TracePath = f.trace
	}

	if cmd.Flags().Changed("policies") {
		ov.Policies = config.ParseList(f.policies)
	}

	if cmd.Flags().Changed("format") {
		ov.Format = f.format
	}

	if cmd.Flags().Changed("summary-file") {
		ov.SummaryFile = f.summaryFile
	}

	if cmd.Flags().Changed("listen") {
		ov.ListenAddr = f.listen
	}

	if cmd.Flags().Changed("no-color") {
		ov.NoColor = &f.noColor
	}

	if cmd.Flags().Changed("log-level") {
		ov.LogLevel = f.logLevel
	}

	if cmd.Flags().Changed("log-format") {
		ov.LogFormat = f.logFormat
	}

	return ov
}
