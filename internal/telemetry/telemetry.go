// Package telemetry provides a JSONL event stream recording what each neo
// invocation did: files loaded, links that could not be resolved, lookups,
// queries and exports. Every event is one JSON object per line, so runs can
// be tailed and analyzed after the fact.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event kinds identify the type of telemetry event.
const (
	KindLoadDone       = "load_done"
	KindLinkUnresolved = "link_unresolved"
	KindLinkDone       = "link_done"
	KindLookup         = "lookup"
	KindQueryDone      = "query_done"
	KindExportDone     = "export_done"
	KindReload         = "reload"
)

// Event represents a single telemetry record. Each event carries a timestamp,
// a kind tag, the command that produced it, and optional structured data.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	Command   string    `json:"cmd,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes telemetry events to a JSONL file. It is safe for concurrent
// use by multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file    *os.File
	enc     *json.Encoder
	command string
	now     func() time.Time
	mu      sync.Mutex
}

// NewEmitter creates a new Emitter that writes JSONL events to the file at
// path, tagging each event with command. The parent directory and the file
// are created if missing; an existing file is appended to.
func NewEmitter(path, command string) (*Emitter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: create dir for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file:    f,
		enc:     json.NewEncoder(f),
		command: command,
		now:     time.Now,
	}, nil
}

// Emit writes a single event to the JSONL file. A zero Timestamp is set to
// the current time and an empty Command to the emitter's command. Calling
// Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if evt.Timestamp.IsZero() {
		evt.Timestamp = e.now().UTC()
	}
	if evt.Command == "" {
		evt.Command = e.command
	}
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Record emits an event of the given kind with data, discarding write
// errors. Telemetry must never fail the command it observes.
func (e *Emitter) Record(kind string, data any) {
	_ = e.Emit(Event{Kind: kind, Data: data})
}

// Close flushes and closes the underlying file. Calling Close on a nil
// Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
