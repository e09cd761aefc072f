package cli

import (
	"net"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/example/psyhunter/internal/config"
	"github.com/example/psyhunter/internal/profile"
)

func TestNewDoctorCmd(t *testing.T) {
	cmd := newDoctorCmd(isolatedLoader(t))
	if cmd.Use != "doctor" {
		t.Errorf("expected Use='doctor', got %q", cmd.Use)
	}
	if !strings.Contains(cmd.Short, "Validate") {
		t.Errorf("expected Short to contain 'Validate', got %q", cmd.Short)
	}
}

func TestCheckGoVersion(t *testing.T) {
	check := checkGoVersion()
	if check.Status != "✓" || !strings.Contains(check.Detail, runtime.Version()) {
		t.Fatalf("unexpected check: %+v", check)
	}
}

func TestCheckConfiguration(t *testing.T) {
	good := config.DefaultRuntimeConfig()
	if check := checkConfiguration(&good); check.Error != nil || check.Status != "✓" {
		t.Fatalf("default config should pass: %+v", check)
	}

	bad := config.DefaultRuntimeConfig()
	bad.Format = "xml"
	if check := checkConfiguration(&bad); check.Error == nil || check.Status != "✗" {
		t.Fatalf("bad format should fail: %+v", check)
	}
}

func TestCheckLexicon(t *testing.T) {
	if check := checkLexicon(); check.Error != nil || !strings.HasSuffix(check.Detail, "words") {
		t.Fatalf("unexpected lexicon check: %+v", check)
	}
}

func TestCheckInput(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		path   string
		status string
		fails  bool
	}{
		{"valid", writeFile(t, dir, "ok.json", stressedPosts), "✓", false},
		{"missing", filepath.Join(dir, "absent.json"), "⊘", false},
		{"malformed", writeFile(t, dir, "bad.json", "{"), "✗", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := checkInput("Profile", tt.path, profile.LoadPosts)
			if check.Status != tt.status || (check.Error != nil) != tt.fails {
				t.Fatalf("unexpected check: %+v", check)
			}
		})
	}
}

func TestCheckListenAddr(t *testing.T) {
	if check := checkListenAddr("0.0.0.0:8501"); check.Error == nil {
		t.Fatalf("non-loopback address should fail")
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	if check := checkListenAddr(ln.Addr().String()); check.Error == nil || !strings.Contains(check.Detail, "in use") {
		t.Fatalf("occupied address should fail: %+v", check)
	}
	if check := checkListenAddr("127.0.0.1:0"); check.Error != nil {
		t.Fatalf("ephemeral port should be available: %+v", check)
	}
}

func TestCheckSummaryDir(t *testing.T) {
	if check := checkSummaryDir(""); check.Status != "⊘" {
		t.Fatalf("expected skip without summary file: %+v", check)
	}
	path := filepath.Join(t.TempDir(), "reports", "summary.json")
	if check := checkSummaryDir(path); check.Error != nil {
		t.Fatalf("unexpected error: %+v", check)
	}
}

func TestDoctorCommandPassesWithMissingInputs(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := execute(t, newDoctorCmd(isolatedLoader(t)),
		"--profile", filepath.Join(dir, "posts.json"),
		"--trace", filepath.Join(dir, "trace.json"),
		"--listen", "127.0.0.1:0",
	)
	if err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "All checks passed") {
		t.Fatalf("expected success line, got:\n%s", stdout)
	}
}

func TestDoctorCommandFailsOnMalformedTrace(t *testing.T) {
	dir := t.TempDir()
	trace := writeFile(t, dir, "trace.json", "not json")

	stdout, stderr, err := execute(t, newDoctorCmd(isolatedLoader(t)), "--trace", trace, "--listen", "127.0.0.1:0")
	if err == nil {
		t.Fatalf("expected doctor to fail:\n%s", stdout)
	}
	if !strings.Contains(stderr, "Error:") {
		t.Fatalf("expected error detail on stderr, got %q", stderr)
	}
}
