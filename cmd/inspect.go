package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/papapumpkin/neo/internal/model"
	"github.com/papapumpkin/neo/internal/telemetry"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Look up a NEO by primary designation or name",
	Long: `Looks up a single NEO by its primary designation (--pdes) or its IAU name
(--name). Matching ignores case and surrounding whitespace.

With --verbose, every close approach of the NEO is listed as well.`,
	Example: `  neo inspect --pdes 433
  neo inspect --name Ganymed --verbose`,
	RunE: runInspect,
}

func init() {
	addInspectFlags(inspectCmd.Flags())
	inspectCmd.MarkFlagsMutuallyExclusive("pdes", "name")
	inspectCmd.MarkFlagsOneRequired("pdes", "name")
	rootCmd.AddCommand(inspectCmd)
}

func addInspectFlags(fs *pflag.FlagSet) {
	fs.String("pdes", "", "primary designation of the NEO")
	fs.String("name", "", "IAU name of the NEO")
}

func runInspect(cmd *cobra.Command, _ []string) error {
	pdes, _ := cmd.Flags().GetString("pdes")
	name, _ := cmd.Flags().GetString("name")

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	var body *model.Body
	by, key := "pdes", pdes
	if cmd.Flags().Changed("name") {
		by, key = "name", name
		body = s.db.FindByName(name)
	} else {
		body = s.db.FindByIdentifier(pdes)
	}

	s.emitter.Record(telemetry.KindLookup, map[string]any{
		"by":    by,
		"key":   key,
		"found": body != nil,
	})

	if body == nil {
		s.printer.NotFound()
		return nil
	}
	s.printer.Body(body, s.cfg.Verbose)
	return nil
}
