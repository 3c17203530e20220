// Package autosaver is the autosave filter: it binds the host's save
// routine at init and lets the scheduler drive it from the frame callback.
package autosaver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/justyntemme/autosaver/pkg/aviutl"
	"github.com/justyntemme/autosaver/pkg/framework/autosave"
	"github.com/justyntemme/autosaver/pkg/framework/binding"
	"github.com/justyntemme/autosaver/pkg/framework/config"
	"github.com/justyntemme/autosaver/pkg/framework/debug"
	"github.com/justyntemme/autosaver/pkg/framework/narrow"
	"github.com/justyntemme/autosaver/pkg/framework/plugin"
	"github.com/justyntemme/autosaver/pkg/framework/setting"
	"github.com/justyntemme/autosaver/pkg/framework/state"
)

const (
	// Name is the filter name and the caption of the version dialog.
	Name = "autosaver"

	// Information is shown in the host's plugin list.
	Information = "autosaver r2"

	// RequiredVersionMessage is shown when the host build is not supported.
	RequiredVersionMessage = "バージョン1.10のAviUtlが必要です。"
)

// Binder resolves the host save routine for a host build loaded at base.
type Binder func(build int, base uintptr) (state.Saver, error)

// Autosaver implements the plugin.Filter interface.
type Autosaver struct {
	clock     func() time.Time
	bind      Binder
	log       hclog.Logger
	logCloser io.Closer
	prevLog   hclog.Logger
	ownLogger bool
	profiler  *debug.Profiler

	state     *state.Process
	scheduler *autosave.Scheduler
}

// Option configures an Autosaver.
type Option func(*Autosaver)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(a *Autosaver) {
		a.clock = clock
	}
}

// WithBinder replaces the offset-based host binding.
func WithBinder(b Binder) Option {
	return func(a *Autosaver) {
		a.bind = b
	}
}

// WithLogger uses l instead of configuring logging from the environment.
func WithLogger(l hclog.Logger) Option {
	return func(a *Autosaver) {
		a.log = l
		a.ownLogger = false
	}
}

// New creates the filter. Nothing touches the host until Init.
func New(opts ...Option) *Autosaver {
	a := &Autosaver{
		clock:     time.Now,
		log:       debug.Default(),
		ownLogger: true,
		profiler:  debug.NewProfiler(),
	}
	a.bind = a.resolveHost
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Info returns the filter descriptor.
func (a *Autosaver) Info() plugin.Info {
	return plugin.Info{
		Name:        Name,
		Information: Information,
		Flags:       aviutl.FlagAlwaysActive | aviutl.FlagDispFilter | aviutl.FlagExInformation,
	}
}

// Init checks the host build, binds the save routine and loads or creates
// the settings file.
func (a *Autosaver) Init(host aviutl.Host) error {
	pluginPath, err := host.PluginPath()
	if err != nil {
		return err
	}
	if a.ownLogger {
		a.configureLogging(filepath.Dir(pluginPath))
	}

	info := host.SysInfo(0)
	base, err := host.ModuleBase()
	if err != nil {
		return err
	}

	saver, err := a.bind(info.Build, base)
	if errors.Is(err, binding.ErrUnsupportedBuild) {
		a.log.Error("host build not supported", "build", info.Build, "supported", binding.SupportedBuild)
		host.MessageBox(RequiredVersionMessage, Name)
		return err
	}
	if err != nil {
		return fmt.Errorf("bind host: %w", err)
	}

	st := state.New(pluginPath, a.clock())
	st.Saver = saver

	set, err := setting.LoadOrCreate(st.SettingPath)
	if err != nil {
		a.log.Warn("settings not loaded, using defaults", "path", st.SettingPath, "error", err)
	}

	a.state = st
	a.scheduler = autosave.New(st, set,
		autosave.WithClock(a.clock),
		autosave.WithLogger(a.log),
		autosave.WithProfiler(a.profiler),
	)

	a.log.Info("autosave enabled",
		"interval", set.Interval(),
		"settings", st.SettingPath,
		"fallback_dir", st.FallbackDir,
	)
	return nil
}

// Proc runs one scheduler tick. The project name is only queried from the
// host when a save is due.
func (a *Autosaver) Proc(host aviutl.Host, editp aviutl.EditHandle) error {
	if a.scheduler == nil {
		return nil
	}
	a.scheduler.Tick(func() string {
		return host.SysInfo(editp).ProjectName
	})
	return nil
}

// Exit logs save timings and releases the log file.
func (a *Autosaver) Exit(aviutl.Host) error {
	if _, ok := a.profiler.Get(autosave.SaveSection); ok {
		a.log.Info("host save timings", a.profiler.LogArgs(autosave.SaveSection)...)
	}
	if a.logCloser == nil {
		return nil
	}

	// The file is about to close, so stop routing package-level logs to it.
	debug.SetDefault(a.prevLog)
	a.log = a.prevLog

	err := a.logCloser.Close()
	a.logCloser = nil
	return err
}

// State returns the session state, nil before a successful Init.
func (a *Autosaver) State() *state.Process {
	return a.state
}

// Setting returns the interval in effect.
func (a *Autosaver) Setting() setting.Setting {
	if a.scheduler == nil {
		return setting.Default()
	}
	return a.scheduler.Setting()
}

func (a *Autosaver) resolveHost(build int, base uintptr) (state.Saver, error) {
	b, err := binding.Resolve(build, base)
	if err != nil {
		return nil, err
	}
	return binding.NewInvoker(b, narrow.System(), a.log), nil
}

// configureLogging applies AUTOSAVER_* options. Failures fall back to the
// default logger.
func (a *Autosaver) configureLogging(dir string) {
	opts, err := config.Load()
	if err != nil {
		a.log.Warn("ignoring environment options", "error", err)
	}

	path := opts.LogPath(dir)
	if path == "" {
		a.log = debug.New(os.Stderr, opts.LogLevel)
		debug.SetDefault(a.log)
		return
	}

	l, closer, err := debug.NewFileLogger(path, opts.LogLevel)
	if err != nil {
		a.log.Warn("cannot open log file", "path", path, "error", err)
		return
	}
	a.prevLog = debug.Default()
	a.log, a.logCloser = l, closer
	debug.SetDefault(l)
}
