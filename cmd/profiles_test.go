package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func noFlags(*pflag.FlagSet) {}

func TestProfiles_List(t *testing.T) {
	dir := setupData(t)
	path := filepath.Join(dir, "profiles.toml")
	content := "[profiles.fast]\ndescription = \"speedy ones\"\nmin_velocity = 20.0\nlimit = 5\n\n[profiles.all]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profiles: %v", err)
	}
	viper.Set("profiles_path", path)

	stdout, _, err := execute(t, "profiles", runProfiles, noFlags)
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	for _, want := range []string{"fast", "speedy ones", "velocity >= 20 (limit 5)", "(all)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q: %q", want, stdout)
		}
	}
	if strings.Index(stdout, "all") > strings.Index(stdout, "fast") {
		t.Errorf("profiles not sorted by name: %q", stdout)
	}
}

func TestProfiles_MissingFile(t *testing.T) {
	setupData(t)
	viper.Set("profiles_path", filepath.Join(t.TempDir(), "none.toml"))

	stdout, stderr, err := execute(t, "profiles", runProfiles, noFlags)
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "no profiles file") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestProfiles_Invalid(t *testing.T) {
	dir := setupData(t)
	path := filepath.Join(dir, "profiles.toml")
	if err := os.WriteFile(path, []byte("[profiles.x]\nlimit = -1\n"), 0o644); err != nil {
		t.Fatalf("write profiles: %v", err)
	}
	viper.Set("profiles_path", path)

	if _, _, err := execute(t, "profiles", runProfiles, noFlags); err == nil {
		t.Fatal("expected error for invalid profile")
	}
}
