// Package autosave decides when to snapshot the project and where to put it.
//
// The scheduler has no timer of its own. It is driven by the host's filter
// callback, which runs many times per second while AviUtl is active, and a
// tick only does work once the configured interval has strictly elapsed.
package autosave

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/justyntemme/autosaver/pkg/framework/debug"
	"github.com/justyntemme/autosaver/pkg/framework/setting"
	"github.com/justyntemme/autosaver/pkg/framework/state"
)

// FileExt is the extension of AviUtl project files.
const FileExt = ".aup"

// SaveSection is the profiler section timing the host's save routine.
const SaveSection = "host_save"

// nameLayout formats to YYYY-MM-DD-HH-MM-SS.
const nameLayout = "2006-01-02-15-04-05"

// Event describes one fired autosave.
type Event struct {
	At   time.Time
	Dir  string
	Path string
	// Saved is what the host's save routine returned.
	Saved bool
}

// ProjectFunc returns the path of the open project file, or "" when the
// project has not been saved yet. It is only called when a save is due.
type ProjectFunc func() string

// FileName returns the autosave file name for t, in local time with second
// precision.
func FileName(t time.Time) string {
	return t.Local().Format(nameLayout) + FileExt
}

// Scheduler gates autosaves on elapsed wall-clock time.
type Scheduler struct {
	state    *state.Process
	setting  setting.Setting
	clock    func() time.Time
	log      hclog.Logger
	profiler *debug.Profiler
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *Scheduler) {
		s.clock = clock
	}
}

// WithLogger sets the logger.
func WithLogger(log hclog.Logger) Option {
	return func(s *Scheduler) {
		s.log = log
	}
}

// WithProfiler times each host save under SaveSection.
func WithProfiler(p *debug.Profiler) Option {
	return func(s *Scheduler) {
		s.profiler = p
	}
}

// New returns a scheduler over st. st.Saver must be set before the first
// tick that comes due.
func New(st *state.Process, set setting.Setting, opts ...Option) *Scheduler {
	s := &Scheduler{
		state:   st,
		setting: set,
		clock:   time.Now,
		log:     hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Setting returns the interval setting in effect.
func (s *Scheduler) Setting() setting.Setting {
	return s.setting
}

// Tick is called once per host frame. It returns false while the interval
// has not strictly elapsed since the last autosave. Otherwise it restarts
// the interval, saves, and returns the event, whether or not the host
// managed to write the file.
func (s *Scheduler) Tick(project ProjectFunc) (Event, bool) {
	now := s.clock()
	if now.Sub(s.state.LastSaved) <= s.setting.Interval() {
		return Event{}, false
	}

	// The interval restarts even if the save below fails.
	s.state.LastSaved = now

	dir := s.destination(project)
	ev := Event{
		At:   now,
		Dir:  dir,
		Path: filepath.Join(dir, FileName(now)),
	}
	stop := s.profiler.Start(SaveSection)
	ev.Saved = s.state.Saver.Save(ev.Path)
	stop()

	if ev.Saved {
		s.log.Info("autosaved project", "path", ev.Path)
	} else {
		s.log.Warn("host did not save project", "path", ev.Path)
	}
	return ev, true
}

// destination picks the open project's directory, falling back to the
// directory beside the plugin.
func (s *Scheduler) destination(project ProjectFunc) string {
	if project != nil {
		if p := project(); p != "" {
			return filepath.Dir(p)
		}
	}

	dir := s.state.FallbackDir
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		if err := os.Mkdir(dir, 0o755); err != nil {
			s.log.Warn("cannot create autosave directory", "dir", dir, "error", err)
		}
	}
	return dir
}
