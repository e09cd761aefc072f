package cli

import (
	"reflect"
	"testing"

	"github.com/example/psyhunter/internal/config"
	"github.com/spf13/cobra"
)

func TestRuntimeFlagsToOverrides(t *testing.T) {
	yes := true

	tests := []struct {
		name string
		args []string
		want config.Overrides
	}{
		{
			name: "no flags",
			args: nil,
			want: config.Overrides{},
		},
		{
			name: "inputs and format",
			args: []string{"--profile", "posts.json", "--trace", "trace.json", "--format", "ndjson"},
			want: config.Overrides{ProfilePath: "posts.json", TracePath: "trace.json", Format: "ndjson"},
		},
		{
			name: "policies are normalised",
			args: []string{"--policies", "Console, dashboard"},
			want: config.Overrides{Policies: []string{"console", "dashboard"}},
		},
		{
			name: "no-color only when set",
			args: []string{"--no-color"},
			want: config.Overrides{NoColor: &yes},
		},
		{
			name: "logging and listen",
			args: []string{"--log-level", "debug", "--log-format", "json", "--listen", "127.0.0.1:9000", "--summary-file", "out.json"},
			want: config.Overrides{LogLevel: "debug", LogFormat: "json", ListenAddr: "127.0.0.1:9000", SummaryFile: "out.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := &runtimeFlagSet{}
			cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
			bindRuntimeFlags(cmd, flags)
			bindPolicyFlag(cmd, flags)
			bindListenFlag(cmd, flags)

			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}

			got := flags.toOverrides(cmd)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("overrides mismatch\n got: %+v\nwant: %+v", got, tt.want)
			}
		})
	}
}

func TestPolicyFlagOnlyOnScan(t *testing.T) {
	loader := isolatedLoader(t)
	if newScanCmd(loader).Flags().Lookup("policies") == nil {
		t.Fatalf("scan should accept --policies")
	}
	if newAssessCmd(loader).Flags().Lookup("policies") != nil {
		t.Fatalf("assess always runs the dashboard policy")
	}
}

func TestDashboardFlags(t *testing.T) {
	cmd := newDashboardCmd(isolatedLoader(t))

	for _, name := range []string{"trace", "listen", "log-level", "log-format"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("dashboard should accept --%s", name)
		}
	}
	for _, name := range []string{"profile", "format", "summary-file", "no-color", "policies"} {
		if cmd.Flags().Lookup(name) != nil {
			t.Errorf("dashboard does not use --%s", name)
		}
	}
}
