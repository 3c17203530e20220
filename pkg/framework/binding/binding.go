// Package binding resolves the two AviUtl internals autosaver needs: the
// slot holding the current edit handle and the host's own save-project
// routine.
//
// Neither is exported by the host. Both sit at fixed displacements from the
// executable's load address, and those displacements are only valid for a
// single build, so resolution is gated on the build identifier. There is no
// way to verify the addresses beyond that gate.
package binding

import (
	"errors"
	"fmt"

	"github.com/justyntemme/autosaver/pkg/aviutl"
)

// SupportedBuild is the only host build the offsets below are valid for.
const SupportedBuild = aviutl.Build110

// Offsets from the host module base for SupportedBuild.
const (
	editHandleSlotOffset = 0x08717c
	saveProjectOffset    = 0x024160
)

var (
	// ErrUnsupportedBuild is returned for any host build other than
	// SupportedBuild.
	ErrUnsupportedBuild = errors.New("unsupported host build")

	// ErrUnsupportedPlatform is returned where host functions cannot be
	// called, i.e. outside a Windows host process.
	ErrUnsupportedPlatform = errors.New("host calls unavailable on this platform")
)

// caller performs the raw memory access and the foreign call.
type caller interface {
	readSlot(addr uintptr) uintptr
	save(fn uintptr, editp uintptr, path []byte) bool
}

// Binding is a resolved view of the host internals. A Binding only exists
// once the build check has passed, so both addresses are always valid
// together.
type Binding struct {
	editSlot    uintptr
	saveProject uintptr
	call        caller
}

// CheckBuild reports whether the offsets are valid for build.
func CheckBuild(build int) error {
	if build != SupportedBuild {
		return fmt.Errorf("%w: got %d, need %d", ErrUnsupportedBuild, build, SupportedBuild)
	}
	return nil
}

// Resolve binds the host internals of a host loaded at base.
func Resolve(build int, base uintptr) (*Binding, error) {
	return resolve(build, base, platformCaller)
}

func resolve(build int, base uintptr, c caller) (*Binding, error) {
	if err := CheckBuild(build); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrUnsupportedPlatform
	}
	return &Binding{
		editSlot:    base + editHandleSlotOffset,
		saveProject: base + saveProjectOffset,
		call:        c,
	}, nil
}

// EditHandle reads the host's current edit handle. The slot is read on
// every call because the host replaces the handle when a project is opened.
func (b *Binding) EditHandle() aviutl.EditHandle {
	return aviutl.EditHandle(b.call.readSlot(b.editSlot))
}

// InvokeSave calls the host's save-project routine. path must already be in
// the host's code page and must not contain NUL.
func (b *Binding) InvokeSave(h aviutl.EditHandle, path []byte) bool {
	return b.call.save(b.saveProject, uintptr(h), path)
}
