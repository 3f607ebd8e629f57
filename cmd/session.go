package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/neo/internal/config"
	"github.com/papapumpkin/neo/internal/database"
	"github.com/papapumpkin/neo/internal/extract"
	"github.com/papapumpkin/neo/internal/model"
	"github.com/papapumpkin/neo/internal/telemetry"
	"github.com/papapumpkin/neo/internal/ui"
)

// session is a loaded data set together with the printer and telemetry
// emitter that observe a single command invocation.
type session struct {
	cfg     config.Config
	printer *ui.Printer
	emitter *telemetry.Emitter
	db      *database.Database
}

// newSession loads configuration and data for cmd. The caller must Close the
// returned session.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	printer := ui.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())
	printer.SetVerbose(cfg.Verbose)

	s := &session{cfg: cfg, printer: printer}
	if cfg.Telemetry.Enabled {
		em, err := telemetry.NewEmitter(cfg.Telemetry.Path, cmd.Name())
		if err != nil {
			printer.Info(fmt.Sprintf("telemetry disabled: %v", err))
		} else {
			s.emitter = em
		}
	}

	if err := s.load(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// load reads both data files and rebuilds the database. On error the previous
// database, if any, is kept.
func (s *session) load() error {
	start := time.Now()

	bodies, err := extract.LoadBodies(s.cfg.NEOsPath)
	if err != nil {
		return err
	}
	approaches, err := extract.LoadApproaches(s.cfg.CADPath)
	if err != nil {
		return err
	}

	s.printer.ResetLinkStats()
	reporter := fanout{s.printer, telemetryReporter{s.emitter}}
	db, err := database.New(bodies, approaches, database.WithReporter(reporter))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	s.emitter.Record(telemetry.KindLoadDone, map[string]any{
		"neos":       len(db.Bodies()),
		"approaches": db.Len(),
		"ms":         elapsed.Milliseconds(),
	})
	s.emitter.Record(telemetry.KindLinkDone, map[string]any{
		"linked":     db.Len() - len(db.Unresolved()),
		"unresolved": len(db.Unresolved()),
	})

	if s.cfg.Verbose {
		s.printer.Loaded(len(db.Bodies()), db.Len(), elapsed)
	}
	s.printer.LinkSummary()

	s.db = db
	return nil
}

// Close releases the telemetry emitter.
func (s *session) Close() {
	_ = s.emitter.Close()
}

// fanout forwards link reports to several reporters in order.
type fanout []database.Reporter

// UnresolvedApproach forwards a to every reporter.
func (f fanout) UnresolvedApproach(a *model.Approach) {
	for _, r := range f {
		r.UnresolvedApproach(a)
	}
}

// telemetryReporter records unresolved links as telemetry events.
type telemetryReporter struct {
	emitter *telemetry.Emitter
}

// UnresolvedApproach emits a link_unresolved event for a.
func (r telemetryReporter) UnresolvedApproach(a *model.Approach) {
	r.emitter.Record(telemetry.KindLinkUnresolved, map[string]any{
		"designation": a.Designation(),
		"time":        a.TimeString(),
	})
}
