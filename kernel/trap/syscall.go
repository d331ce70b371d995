package trap

import (
	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/fsyscall"
)

// Syscall numbers carried on Regs.AX for vector 0x80 (spec.md §4.5).
// The core doesn't fix real ABI numbers for these; this table is this
// kernel's own, self-consistent catalog of the file syscall family.
const (
	SysOpen = iota
	SysClose
	SysDup
	SysRead
	SysWrite
	SysLseek
	SysStat
	SysFstat
	SysFpath
	SysFsync
	SysFtruncate
	SysMkdir
	SysRmdir
	SysUnlink
	SysPipe2
	SysChdir
)

// Syscall implements vector 0x80: dispatch by regs.AX (spec.md §4.6),
// translating the file syscall family into kernel/fsyscall calls and
// encoding the result back into regs.AX per the negated-errno ABI
// (spec.md §6): non-negative on success, negated errno on failure.
func (d *Dispatcher) Syscall(regs *Regs) {
	env := d.Env
	switch regs.AX {
	case SysOpen:
		fd, err := fsyscall.Open(env, regs.Path, int(regs.BX))
		regs.AX = abiResult(int64(fd), err)
	case SysClose:
		err := fsyscall.Close(env, int(regs.BX))
		regs.AX = abiResult(0, err)
	case SysDup:
		fd, err := fsyscall.Dup(env, int(regs.BX))
		regs.AX = abiResult(int64(fd), err)
	case SysRead:
		n, err := fsyscall.Read(env, int(regs.BX), regs.Buf)
		regs.AX = abiResult(int64(n), err)
	case SysWrite:
		n, err := fsyscall.Write(env, int(regs.BX), regs.Buf)
		regs.AX = abiResult(int64(n), err)
	case SysLseek:
		off, err := fsyscall.Lseek(env, int(regs.BX), int64(regs.CX), int(regs.DX))
		regs.AX = abiResult(off, err)
	case SysStat:
		err := fsyscall.Stat(env, regs.Path, regs.Stat)
		regs.AX = abiResult(0, err)
	case SysFstat:
		err := fsyscall.Fstat(env, int(regs.BX), regs.Stat)
		regs.AX = abiResult(0, err)
	case SysFpath:
		n, err := fsyscall.Fpath(env, int(regs.BX), regs.Buf)
		regs.AX = abiResult(int64(n), err)
	case SysFsync:
		err := fsyscall.Fsync(env, int(regs.BX))
		regs.AX = abiResult(0, err)
	case SysFtruncate:
		err := fsyscall.Ftruncate(env, int(regs.BX), int64(regs.CX))
		regs.AX = abiResult(0, err)
	case SysMkdir:
		err := fsyscall.Mkdir(env, regs.Path, int(regs.BX))
		regs.AX = abiResult(0, err)
	case SysRmdir:
		err := fsyscall.Rmdir(env, regs.Path)
		regs.AX = abiResult(0, err)
	case SysUnlink:
		err := fsyscall.Unlink(env, regs.Path)
		regs.AX = abiResult(0, err)
	case SysPipe2:
		err := fsyscall.Pipe2(env, regs.OutFDs, int(regs.BX))
		regs.AX = abiResult(0, err)
	case SysChdir:
		err := fsyscall.Chdir(env, regs.Path)
		regs.AX = abiResult(0, err)
	default:
		regs.AX = abiResult(0, errno.New(errno.EINVAL, "syscall"))
	}
}

// abiResult encodes a syscall result per spec.md §6: the value itself
// on success, or the negated errno code on failure, both as the
// two's-complement bit pattern a real int-sized register would carry.
func abiResult(value int64, err error) uint32 {
	if err != nil {
		return uint32(int32(errno.Negate(err)))
	}
	return uint32(value)
}
