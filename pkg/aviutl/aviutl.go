// Package aviutl describes the parts of the AviUtl filter plugin interface
// that autosaver depends on.
//
// The C layout lives in aviutl.h and is only compiled on Windows. Everything
// above the cgo boundary talks to the host through the Host interface so it
// can be exercised with a fake in tests.
package aviutl

// Build110 is the build identifier AviUtl 1.10 reports through get_sys_info.
const Build110 = 11003

// EditHandle is the host's opaque pointer to the active editing session.
type EditHandle uintptr

// FilterFlag is a bit in FILTER_DLL.flag.
type FilterFlag uint32

// Filter flags from filter.h.
const (
	FlagActive        FilterFlag = 1
	FlagAlwaysActive  FilterFlag = 4
	FlagConfigPopup   FilterFlag = 8
	FlagExData        FilterFlag = 1024
	FlagDispFilter    FilterFlag = 0x8000
	FlagRedraw        FilterFlag = 0x20000
	FlagExInformation FilterFlag = 0x40000
	FlagInformation   FilterFlag = 0x80000
	FlagNoConfig      FilterFlag = 0x100000
	FlagAudioFilter   FilterFlag = 0x200000
)

// SysInfo is the subset of SYS_INFO autosaver reads.
type SysInfo struct {
	// Build is the host build identifier.
	Build int
	// ProjectName is the path of the open project file, empty when the
	// project has never been saved.
	ProjectName string
}

// Host is the view of the running AviUtl instance given to a filter.
type Host interface {
	// SysInfo queries get_sys_info for the given edit session. A zero
	// EditHandle asks for process-wide information only.
	SysInfo(editp EditHandle) SysInfo

	// ModuleBase returns the load address of the host executable.
	ModuleBase() (uintptr, error)

	// PluginPath returns the full path of the loaded plugin file.
	PluginPath() (string, error)

	// MessageBox shows a blocking informational dialog owned by the
	// filter window.
	MessageBox(text, caption string)
}
