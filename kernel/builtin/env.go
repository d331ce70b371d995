package builtin

import (
	"strings"

	"github.com/vvlevchenko/mini32k/kernel/environment"
	"github.com/vvlevchenko/mini32k/kernel/intex"
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
	"github.com/vvlevchenko/mini32k/kernel/stat"
	"github.com/vvlevchenko/mini32k/kernel/task"
)

// EnvScheme is the "env:" scheme: the current context's environment
// variables (spec.md §3's Context.env_vars and §6's
// COLUMNS/LINES-via-kinit convention), addressed one variable per
// reference. Opening "env:" with an empty reference lists every
// "KEY=VALUE" pair; opening "env:NAME" reads or writes that single
// variable.
type EnvScheme struct {
	scheme.Base
	env *environment.Environment
}

// NewEnvScheme returns the env: scheme over env's current context.
func NewEnvScheme(env *environment.Environment) *EnvScheme {
	return &EnvScheme{Base: scheme.Base{SchemeName: "env"}, env: env}
}

// Open lists all variables for an empty reference, or binds to a
// single variable resource otherwise.
func (s *EnvScheme) Open(url kurl.URL, flags int) (resource.Resource, error) {
	name := strings.TrimPrefix(url.Reference(), "/")
	if name == "" {
		lines, err := intex.WithErr(s.env.Contexts, func(m *task.Manager) ([]string, error) {
			ctx, err := m.Current()
			if err != nil {
				return nil, err
			}
			var out []string
			for k, v := range ctx.Env {
				out = append(out, k+"="+v)
			}
			return out, nil
		})
		if err != nil {
			return nil, err
		}
		return resource.NewVec("env:", []byte(strings.Join(lines, "\n"))), nil
	}
	return &envVarResource{env: s.env, name: name}, nil
}

// Stat reports a variable reference as a regular file.
func (s *EnvScheme) Stat(url kurl.URL, out *stat.Stat) error {
	out.Mode = stat.ModeFile
	return nil
}

// envVarResource reads or overwrites one named variable in the
// current context's environment on every call, matching a real
// "env:NAME" device where each read/write is a fresh round trip.
type envVarResource struct {
	resource.Unsupported
	env  *environment.Environment
	name string
}

func (r *envVarResource) Read(buf []byte) (int, error) {
	value, err := intex.WithErr(r.env.Contexts, func(m *task.Manager) (string, error) {
		ctx, err := m.Current()
		if err != nil {
			return "", err
		}
		return ctx.Env[r.name], nil
	})
	if err != nil {
		return 0, err
	}
	return copy(buf, []byte(value)), nil
}

func (r *envVarResource) Write(buf []byte) (int, error) {
	_, err := intex.WithErr(r.env.Contexts, func(m *task.Manager) (struct{}, error) {
		ctx, err := m.Current()
		if err != nil {
			return struct{}{}, err
		}
		ctx.Env[r.name] = string(buf)
		return struct{}{}, nil
	})
	if err != nil {
		return 0, err
	}
	return len(buf), nil
}

func (r *envVarResource) Stat(out *stat.Stat) error {
	out.Mode = stat.ModeFile
	return nil
}

func (r *envVarResource) Path(buf []byte) (int, error) {
	return copy(buf, []byte("env:"+r.name)), nil
}

func (r *envVarResource) Dup() (resource.Resource, error) {
	return &envVarResource{env: r.env, name: r.name}, nil
}

func (r *envVarResource) Close() error { return nil }
