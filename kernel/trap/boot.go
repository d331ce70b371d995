package trap

import (
	"fmt"

	"github.com/vvlevchenko/mini32k/kernel/environment"
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
	"github.com/vvlevchenko/mini32k/kernel/task"
)

// BootConfig supplies the collaborators spec.md §4.8 reduces to
// narrow interfaces: the schemes to install (in the order they must
// be registered), an optional console, an optional disk set, and the
// display geometry kinit derives COLUMNS/LINES from. ELF loading,
// ACPI probing, page-table setup, and device enumeration are
// deliberately out of scope (spec.md §1) and are not modeled here;
// a caller that wants them runs its own setup before or via Schemes.
type BootConfig struct {
	Schemes       []scheme.Scheme
	Console       environment.Console
	Disks         []environment.Disk
	DisplayWidth  int
	DisplayHeight int
}

// defaultDisplay matches a common 80x25 text-mode geometry when a
// caller doesn't supply one, so COLUMNS/LINES are always sensible.
const (
	defaultDisplayWidth  = 640
	defaultDisplayHeight = 400
)

// Boot implements spec.md §4.8's kernel-init sequence on an
// Environment the caller has already allocated, scoped to what the
// core actually owns: enable the console, register the built-in
// schemes in order, push the root context, enable scheduling, and
// spawn kinit.
//
// BSS zeroing, paging setup, the userspace linear-memory unmap, the
// TSS pointer install, ACPI probing, and RTC sampling are bootloader/
// hardware concerns with no hosted analogue and are not implemented;
// only the TSS address is recorded, as a log line, matching spec.md
// §1's treatment of such collaborators as out of scope.
func Boot(env *environment.Environment, tssPhysAddr uint32, cfg BootConfig) {
	env.Log(environment.LogInfo, fmt.Sprintf("TSS physical address %08X installed", tssPhysAddr))

	if cfg.Console != nil {
		env.Console.With(func(c *environment.Console) { *c = cfg.Console })
	}
	env.Disks.With(func(disks *[]environment.Disk) {
		*disks = append(*disks, cfg.Disks...)
	})

	for _, s := range cfg.Schemes {
		if err := env.RegisterScheme(s); err != nil {
			env.Log(environment.LogError, fmt.Sprintf("register scheme %q: %v", s.Name(), err))
		}
	}

	env.Contexts.With(func(m *task.Manager) {
		m.Push(task.NewContext(m.AllocatePID(), "kernel"))
	})

	width, height := cfg.DisplayWidth, cfg.DisplayHeight
	if width == 0 {
		width = defaultDisplayWidth
	}
	if height == 0 {
		height = defaultDisplayHeight
	}
	env.Contexts.With(func(m *task.Manager) { m.Enable() })

	spawnKinit(env, width, height)
}

// spawnKinit builds the kinit context per spec.md §4.8: cwd
// "initfs:/", three debug: handles for stdio, COLUMNS/LINES from the
// display geometry, then (conceptually) execs initfs:/bin/init — ELF
// loading is out of scope, so exec is recorded as a log line rather
// than a real address-space swap.
func spawnKinit(env *environment.Environment, displayWidth, displayHeight int) {
	var pid int
	env.Contexts.With(func(m *task.Manager) { pid = m.AllocatePID() })

	ctx := task.NewContext(pid, "kinit")
	ctx.Cwd = "initfs:/"

	debugURL, _ := kurl.Parse("debug:")
	for i := 0; i < 3; i++ {
		r, err := env.Open(debugURL, 0)
		if err != nil {
			env.Log(environment.LogError, fmt.Sprintf("kinit: open debug: %v", err))
			continue
		}
		ctx.AddFile(r)
	}

	ctx.Env["COLUMNS"] = fmt.Sprintf("%d", displayWidth/8)
	ctx.Env["LINES"] = fmt.Sprintf("%d", displayHeight/16)

	env.Contexts.With(func(m *task.Manager) { m.Push(ctx) })
	env.Log(environment.LogInfo, "kinit: exec initfs:/bin/init")
}
