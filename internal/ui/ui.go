// Package ui renders neo's terminal output. Results go to stdout; status
// lines and diagnostics go to stderr so that results can be piped.
package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/papapumpkin/neo/internal/model"
)

// Printer writes styled output. The zero value is not usable; use
// NewWithWriters.
type Printer struct {
	out     io.Writer
	err     io.Writer
	verbose bool

	unresolved int
}

// NewWithWriters returns a Printer writing results to out and diagnostics to
// errw.
func NewWithWriters(out, errw io.Writer) *Printer {
	return &Printer{out: out, err: errw}
}

// SetVerbose controls whether per-record diagnostics are printed.
func (p *Printer) SetVerbose(v bool) {
	p.verbose = v
}

// Loaded reports how many records were read and how long it took.
func (p *Printer) Loaded(neos, approaches int, elapsed time.Duration) {
	fmt.Fprintln(p.err, styleDim.Render(fmt.Sprintf("loaded %d NEOs and %d close approaches in %s",
		neos, approaches, elapsed.Round(time.Millisecond))))
}

// UnresolvedApproach records an approach whose designation matched no NEO.
// The approach is printed only in verbose mode; LinkSummary reports the
// total.
func (p *Printer) UnresolvedApproach(a *model.Approach) {
	p.unresolved++
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.err, "%s NEO %s not found for approach at %s\n",
		styleWarn.Render(iconWarn), a.Designation(), a.TimeString())
}

// LinkSummary prints a warning if any approaches could not be linked.
func (p *Printer) LinkSummary() {
	if p.unresolved == 0 {
		return
	}
	fmt.Fprintf(p.err, "%s %d close approach(es) reference unknown NEOs and were left unlinked\n",
		styleWarn.Render(iconWarn), p.unresolved)
}

// Body prints a NEO and, if withApproaches is set, each of its approaches.
func (p *Printer) Body(b *model.Body, withApproaches bool) {
	icon := styleName.Render(iconBody)
	if b.Hazardous {
		icon = styleHazard.Render(iconBody)
	}
	fmt.Fprintf(p.out, "%s %s\n", icon, b)
	if !withApproaches {
		return
	}
	for _, a := range b.Approaches() {
		fmt.Fprintf(p.out, "  %s %s\n", styleDim.Render(iconDot), a)
	}
}

// Approach prints a single close approach.
func (p *Printer) Approach(a *model.Approach) {
	fmt.Fprintln(p.out, a)
}

// NotFound reports a lookup without a match. This is not an error.
func (p *Printer) NotFound() {
	fmt.Fprintln(p.err, styleWarn.Render("No matching NEOs exist in the database."))
}

// QueryStart prints the filters a query will apply.
func (p *Printer) QueryStart(filters string) {
	fmt.Fprintln(p.err, styleHeading.Render("query")+" "+styleDim.Render(filters))
}

// QueryDone reports the number of approaches printed or written.
func (p *Printer) QueryDone(n int) {
	fmt.Fprintf(p.err, "%s %d matching close approach(es)\n", styleOK.Render(iconDone), n)
}

// Exported reports a completed export.
func (p *Printer) Exported(n int, path string) {
	fmt.Fprintf(p.err, "%s wrote %d close approach(es) to %s\n", styleOK.Render(iconDone), n, path)
}

// Profile prints one saved query profile.
func (p *Printer) Profile(name, description, filters string) {
	fmt.Fprintln(p.out, styleHeading.Render(name))
	if description != "" {
		fmt.Fprintf(p.out, "  %s\n", description)
	}
	fmt.Fprintf(p.out, "  %s\n", styleDim.Render(filters))
}

// Reloading reports that a data file changed and the data set is reloaded.
func (p *Printer) Reloading(path string) {
	fmt.Fprintf(p.err, "\n%s %s changed, reloading\n", styleHeading.Render(iconDot), path)
}

// ResetLinkStats clears the unresolved-approach count before a reload.
func (p *Printer) ResetLinkStats() {
	p.unresolved = 0
}

// Error prints an error message.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.err, "%s %s\n", styleError.Render(iconFailed+" error:"), msg)
}

// Info prints a de-emphasized informational message.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.err, styleDim.Render(msg))
}
