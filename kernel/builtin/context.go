package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vvlevchenko/mini32k/kernel/environment"
	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/intex"
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
	"github.com/vvlevchenko/mini32k/kernel/stat"
	"github.com/vvlevchenko/mini32k/kernel/task"
)

// ContextScheme is the "context:" scheme: a read-only process table
// over the live ContextManager (spec.md §4.4), the core's equivalent
// of /proc. Opening "context:" lists every context as
// "PID NAME BLOCKED TIME"; opening "context:PID" reports just that
// one.
//
// Grounded on the teacher's container.List/container.State pairing
// (a bulk listing plus a single-ID lookup over the same underlying
// table), here over Contexts instead of on-disk container state.
type ContextScheme struct {
	scheme.Base
	env *environment.Environment
}

// NewContextScheme returns the context: scheme over env's contexts.
func NewContextScheme(env *environment.Environment) *ContextScheme {
	return &ContextScheme{Base: scheme.Base{SchemeName: "context"}, env: env}
}

func formatContext(c *task.Context) string {
	return fmt.Sprintf("%d %s %t %d", c.PID, c.Name, c.Blocked, c.Time)
}

// Open lists every context for an empty reference, or a single one by
// numeric PID.
func (s *ContextScheme) Open(url kurl.URL, flags int) (resource.Resource, error) {
	ref := strings.TrimPrefix(url.Reference(), "/")
	if ref == "" {
		lines, err := intex.WithErr(s.env.Contexts, func(m *task.Manager) ([]string, error) {
			var out []string
			for _, c := range m.All() {
				out = append(out, formatContext(c))
			}
			return out, nil
		})
		if err != nil {
			return nil, err
		}
		return resource.NewVec("context:", []byte(strings.Join(lines, "\n"))), nil
	}

	pid, err := strconv.Atoi(ref)
	if err != nil {
		return nil, errno.New(errno.ENOENT, "open")
	}
	line, err := intex.WithErr(s.env.Contexts, func(m *task.Manager) (string, error) {
		ctx, ok := m.ByPID(pid)
		if !ok {
			return "", errno.New(errno.ENOENT, "open")
		}
		return formatContext(ctx), nil
	})
	if err != nil {
		return nil, err
	}
	return resource.NewVec(fmt.Sprintf("context:%d", pid), []byte(line)), nil
}

// Stat reports a context reference as a regular (read-only) file.
func (s *ContextScheme) Stat(url kurl.URL, out *stat.Stat) error {
	out.Mode = stat.ModeFile
	return nil
}
