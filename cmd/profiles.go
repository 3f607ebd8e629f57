package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/neo/internal/config"
	"github.com/papapumpkin/neo/internal/filter"
	"github.com/papapumpkin/neo/internal/profile"
	"github.com/papapumpkin/neo/internal/ui"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List saved query profiles",
	Long: `Lists the query profiles defined in the profiles file (profiles_path,
default .neo/profiles.toml) with the filters each one applies.`,
	RunE: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	printer := ui.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())

	set, err := profile.Load(cfg.ProfilesPath)
	if errors.Is(err, fs.ErrNotExist) {
		printer.Info(fmt.Sprintf("no profiles file at %s", cfg.ProfilesPath))
		return nil
	}
	if err != nil {
		return err
	}

	names := set.Names()
	if len(names) == 0 {
		printer.Info(fmt.Sprintf("no profiles defined in %s", cfg.ProfilesPath))
		return nil
	}
	for _, name := range names {
		p := set.Profiles[name]
		filters := filter.Create(p.Criteria()).String()
		if p.Limit > 0 {
			filters += fmt.Sprintf(" (limit %d)", p.Limit)
		}
		printer.Profile(name, p.Description, filters)
	}
	return nil
}
