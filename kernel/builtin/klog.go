package builtin

import (
	"strings"

	"github.com/vvlevchenko/mini32k/kernel/environment"
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
	"github.com/vvlevchenko/mini32k/kernel/stat"
)

// KlogScheme is the "klog:" scheme: a read-only snapshot of the
// kernel's in-memory log ring (spec.md §3's Environment.logs),
// formatted one "level: message" line per entry. cmd/kctl wires
// kernel/klog's structured logger to this same ring via a
// klog.RingHandler (see cmd/kctl/kernel.go's newKernel), so the
// process's slog output and what this scheme reads are one system.
type KlogScheme struct {
	scheme.Base
	env *environment.Environment
}

// NewKlogScheme returns the klog: scheme over env's log ring.
func NewKlogScheme(env *environment.Environment) *KlogScheme {
	return &KlogScheme{Base: scheme.Base{SchemeName: "klog"}, env: env}
}

// Open snapshots the current log ring into a read-only Vec resource.
// Later appends to the ring are not reflected in an already-open
// handle, matching a real kernel log device's "read what's there now"
// semantics.
func (s *KlogScheme) Open(url kurl.URL, flags int) (resource.Resource, error) {
	var lines []string
	s.env.Logs.With(func(logs *[]environment.LogEntry) {
		for _, e := range *logs {
			lines = append(lines, e.Level.String()+": "+e.Message)
		}
	})
	return resource.NewVec("klog:", []byte(strings.Join(lines, "\n"))), nil
}

// Stat reports the log ring as a regular (read-only) file.
func (s *KlogScheme) Stat(url kurl.URL, out *stat.Stat) error {
	out.Mode = stat.ModeFile
	return nil
}
