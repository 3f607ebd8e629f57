package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/papapumpkin/neo/internal/config"
	"github.com/papapumpkin/neo/internal/database"
	"github.com/papapumpkin/neo/internal/export"
	"github.com/papapumpkin/neo/internal/filter"
	"github.com/papapumpkin/neo/internal/profile"
	"github.com/papapumpkin/neo/internal/telemetry"
)

// defaultPrintLimit caps printed results when no limit is configured.
const defaultPrintLimit = 10

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query close approaches",
	Long: `Prints or exports the close approaches matching every given filter, in the
order they appear in the approach data.

A saved --profile supplies default filters; explicit flags override them.
Without --outfile at most 10 results are printed unless --limit (or the limit
setting) says otherwise. With --outfile the format follows the extension:
.csv, .json, .db or .sqlite.

With --watch, the data files are reloaded and the query re-run whenever they
change.`,
	Example: `  neo query --date 2020-01-01
  neo query --start-date 2020-01-01 --end-date 2020-12-31 --max-distance 0.05 --hazardous
  neo query --profile close-and-fast --outfile results.json`,
	RunE: runQuery,
}

func init() {
	addQueryFlags(queryCmd.Flags())
	queryCmd.MarkFlagsMutuallyExclusive("hazardous", "not-hazardous")
	queryCmd.MarkFlagsMutuallyExclusive("date", "start-date")
	queryCmd.MarkFlagsMutuallyExclusive("date", "end-date")
	rootCmd.AddCommand(queryCmd)
}

func addQueryFlags(fs *pflag.FlagSet) {
	fs.String("date", "", "only approaches on this date (YYYY-MM-DD)")
	fs.String("start-date", "", "only approaches on or after this date (YYYY-MM-DD)")
	fs.String("end-date", "", "only approaches on or before this date (YYYY-MM-DD)")
	fs.Float64("min-distance", 0, "minimum approach distance in au")
	fs.Float64("max-distance", 0, "maximum approach distance in au")
	fs.Float64("min-velocity", 0, "minimum relative velocity in km/s")
	fs.Float64("max-velocity", 0, "maximum relative velocity in km/s")
	fs.Float64("min-diameter", 0, "minimum NEO diameter in km")
	fs.Float64("max-diameter", 0, "maximum NEO diameter in km")
	fs.Bool("hazardous", false, "only potentially hazardous NEOs")
	fs.Bool("not-hazardous", false, "only NEOs that are not potentially hazardous")
	fs.String("pdes", "", "only approaches of the NEO with this designation")
	fs.String("profile", "", "named profile from the profiles file")
	fs.Int("limit", 0, "maximum number of results, 0 for no limit")
	fs.StringP("outfile", "o", "", "write results to this file instead of printing")
	fs.BoolP("watch", "w", false, "re-run the query when the data files change")
}

// queryPlan is a fully resolved query.
type queryPlan struct {
	chain   filter.Chain
	limit   int
	outfile string
}

func runQuery(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	plan, err := buildPlan(cmd.Flags(), s.cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := s.runQuery(ctx, plan); err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); !watch {
		return nil
	}
	ctx, cancel := setupSignalContext(ctx, s.printer)
	defer cancel()
	return s.watch(ctx, func() error { return s.runQuery(ctx, plan) })
}

// buildPlan combines the selected profile, the flags and the config.
func buildPlan(fs *pflag.FlagSet, cfg config.Config) (queryPlan, error) {
	var (
		base         filter.Criteria
		profileLimit int
	)
	if name, _ := fs.GetString("profile"); name != "" {
		set, err := profile.Load(cfg.ProfilesPath)
		if err != nil {
			return queryPlan{}, err
		}
		p, err := set.Get(name)
		if err != nil {
			return queryPlan{}, err
		}
		base, profileLimit = p.Criteria(), p.Limit
	}

	flags, err := criteriaFromFlags(fs)
	if err != nil {
		return queryPlan{}, err
	}

	outfile, _ := fs.GetString("outfile")
	flagLimit, _ := fs.GetInt("limit")
	if flagLimit < 0 {
		return queryPlan{}, fmt.Errorf("--limit must not be negative, got %d", flagLimit)
	}

	return queryPlan{
		chain:   filter.Create(base.Merge(flags)),
		limit:   resolveLimit(fs.Changed("limit"), flagLimit, profileLimit, cfg.Limit, outfile != ""),
		outfile: outfile,
	}, nil
}

// criteriaFromFlags returns the criteria for every filter flag that was set.
func criteriaFromFlags(fs *pflag.FlagSet) (filter.Criteria, error) {
	var c filter.Criteria

	dates := []struct {
		flag string
		dst  **time.Time
	}{
		{"date", &c.Date},
		{"start-date", &c.StartDate},
		{"end-date", &c.EndDate},
	}
	for _, d := range dates {
		if !fs.Changed(d.flag) {
			continue
		}
		raw, _ := fs.GetString(d.flag)
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD", d.flag, raw)
		}
		*d.dst = &t
	}

	numbers := []struct {
		flag string
		dst  **float64
	}{
		{"min-distance", &c.MinDistance},
		{"max-distance", &c.MaxDistance},
		{"min-velocity", &c.MinVelocity},
		{"max-velocity", &c.MaxVelocity},
		{"min-diameter", &c.MinDiameter},
		{"max-diameter", &c.MaxDiameter},
	}
	for _, n := range numbers {
		if !fs.Changed(n.flag) {
			continue
		}
		v, _ := fs.GetFloat64(n.flag)
		*n.dst = &v
	}

	switch {
	case fs.Changed("hazardous"):
		v, _ := fs.GetBool("hazardous")
		c.Hazardous = &v
	case fs.Changed("not-hazardous"):
		v, _ := fs.GetBool("not-hazardous")
		v = !v
		c.Hazardous = &v
	}

	c.Designation, _ = fs.GetString("pdes")
	return c, nil
}

// resolveLimit picks the result limit. An explicit --limit wins, then the
// profile, then the config. Otherwise printed output is capped and file
// output is not.
func resolveLimit(flagSet bool, flagLimit, profileLimit, cfgLimit int, toFile bool) int {
	switch {
	case flagSet:
		return flagLimit
	case profileLimit > 0:
		return profileLimit
	case cfgLimit > 0:
		return cfgLimit
	case toFile:
		return 0
	default:
		return defaultPrintLimit
	}
}

// runQuery evaluates plan against the current database and prints or writes
// the results.
func (s *session) runQuery(ctx context.Context, plan queryPlan) error {
	start := time.Now()
	filters := plan.chain.String()
	s.printer.QueryStart(filters)

	results := database.Limit(s.db.Query(plan.chain...), plan.limit)

	var n int
	if plan.outfile == "" {
		for a := range results {
			s.printer.Approach(a)
			n++
		}
		s.printer.QueryDone(n)
	} else {
		var err error
		n, err = export.Write(ctx, plan.outfile, results)
		if err != nil {
			return err
		}
		s.printer.Exported(n, plan.outfile)
		s.emitter.Record(telemetry.KindExportDone, map[string]any{
			"path":  plan.outfile,
			"count": n,
		})
	}

	s.emitter.Record(telemetry.KindQueryDone, map[string]any{
		"filters": filters,
		"limit":   plan.limit,
		"matched": n,
		"ms":      time.Since(start).Milliseconds(),
	})
	return nil
}
