// Package state holds the per-session state shared by the host callbacks.
package state

import (
	"path/filepath"
	"time"

	"github.com/justyntemme/autosaver/pkg/framework/setting"
)

// FallbackDirName is the directory beside the plugin that receives
// autosaves of projects that have never been saved.
const FallbackDirName = "autosaver"

// Saver writes the current project to path and reports the host's verdict.
type Saver interface {
	Save(path string) bool
}

// Process is the state of one plugin session, from func_init until the
// host unloads the plugin. It is only touched from the host's thread.
type Process struct {
	// SettingPath is the settings file beside the plugin.
	SettingPath string
	// FallbackDir receives autosaves when no project file is open.
	FallbackDir string
	// LastSaved is when the last autosave was attempted, or when the
	// session started.
	LastSaved time.Time
	// Saver is the bound host save routine. Nil until binding succeeds.
	Saver Saver
}

// New lays out the session state for a plugin loaded from pluginPath.
func New(pluginPath string, started time.Time) *Process {
	dir := filepath.Dir(pluginPath)
	return &Process{
		SettingPath: filepath.Join(dir, setting.FileName),
		FallbackDir: filepath.Join(dir, FallbackDirName),
		LastSaved:   started,
	}
}

// Bound reports whether a save routine is attached.
func (p *Process) Bound() bool {
	return p != nil && p.Saver != nil
}
