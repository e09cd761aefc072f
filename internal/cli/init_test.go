package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/psyhunter/internal/profile"
)

func TestInitCommandWritesSamples(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := execute(t, newInitCmd(isolatedLoader(t)), "--dir", dir)
	if err != nil {
		t.Fatalf("init failed: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "Workspace ready") {
		t.Fatalf("expected success message, got %s", stdout)
	}

	posts, err := profile.LoadPosts(filepath.Join(dir, "target_data.json"))
	if err != nil {
		t.Fatalf("sample posts should load: %v", err)
	}
	if posts.DisplayName != "Jordan Vale" || len(posts.Samples) != 3 {
		t.Fatalf("unexpected sample profile: %+v", posts)
	}

	trace, err := profile.LoadTrace(filepath.Join(dir, "digital_trace.json"))
	if err != nil {
		t.Fatalf("sample trace should load: %v", err)
	}
	if trace.DisplayName != "jvale" {
		t.Fatalf("unexpected trace identity %q", trace.DisplayName)
	}

	if _, err := os.Stat(filepath.Join(dir, "psyhunter.yml")); err != nil {
		t.Fatalf("config not written: %v", err)
	}
}

func TestInitCommandKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	existing := writeFile(t, dir, "target_data.json", `{"real_name": "Mine", "recent_posts": []}`)

	stdout, _, err := execute(t, newInitCmd(isolatedLoader(t)), "--dir", dir)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(stdout, "skip") {
		t.Fatalf("expected skip notice, got %s", stdout)
	}

	data, _ := os.ReadFile(existing)
	if !strings.Contains(string(data), "Mine") {
		t.Fatalf("existing file was overwritten without --force")
	}

	if _, _, err := execute(t, newInitCmd(isolatedLoader(t)), "--dir", dir, "--force"); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	data, _ = os.ReadFile(existing)
	if strings.Contains(string(data), "Mine") {
		t.Fatalf("--force should overwrite existing files")
	}
}
