package plugin

import (
	"sync"

	"github.com/justyntemme/autosaver/pkg/aviutl"
	"github.com/justyntemme/autosaver/pkg/framework/debug"
)

var (
	// Global filter instance
	globalFilter Filter
	globalMu     sync.RWMutex
)

// Register sets the global filter instance
func Register(f Filter) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalFilter = f
}

func registered() Filter {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalFilter
}

// recoverPanic keeps a Go panic from unwinding into host frames.
func recoverPanic(operation string, result *bool, onPanic bool) {
	if r := recover(); r != nil {
		debug.Error("filter callback panicked", "callback", operation, "panic", r)
		*result = onPanic
	}
}

// dispatchInit runs func_init. Failure makes the host discard the filter.
func dispatchInit(host aviutl.Host) (ok bool) {
	f := registered()
	if f == nil {
		return false
	}
	defer recoverPanic("func_init", &ok, false)

	if err := f.Info().Validate(); err != nil {
		debug.Error("invalid filter info", "error", err)
		return false
	}
	if err := f.Init(host); err != nil {
		debug.Error("filter init failed", "error", err)
		return false
	}
	return true
}

// dispatchProc runs func_proc. It always reports success so the host keeps
// rendering.
func dispatchProc(host aviutl.Host, editp aviutl.EditHandle) (ok bool) {
	f := registered()
	if f == nil {
		return true
	}
	defer recoverPanic("func_proc", &ok, true)

	if err := f.Proc(host, editp); err != nil {
		debug.Warn("filter proc failed", "error", err)
	}
	return true
}

// dispatchExit runs func_exit.
func dispatchExit(host aviutl.Host) (ok bool) {
	f := registered()
	if f == nil {
		return true
	}
	defer recoverPanic("func_exit", &ok, false)

	if err := f.Exit(host); err != nil {
		debug.Warn("filter exit failed", "error", err)
		return false
	}
	return true
}
