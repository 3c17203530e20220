package autosaver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/justyntemme/autosaver/pkg/aviutl"
	"github.com/justyntemme/autosaver/pkg/framework/autosave"
	"github.com/justyntemme/autosaver/pkg/framework/binding"
	"github.com/justyntemme/autosaver/pkg/framework/setting"
	"github.com/justyntemme/autosaver/pkg/framework/state"
)

type message struct {
	text, caption string
}

type fakeHost struct {
	build      int
	base       uintptr
	pluginPath string
	project    string

	messages     []message
	sysInfoCalls int
}

func (h *fakeHost) SysInfo(aviutl.EditHandle) aviutl.SysInfo {
	h.sysInfoCalls++
	return aviutl.SysInfo{Build: h.build, ProjectName: h.project}
}

func (h *fakeHost) ModuleBase() (uintptr, error) { return h.base, nil }

func (h *fakeHost) PluginPath() (string, error) { return h.pluginPath, nil }

func (h *fakeHost) MessageBox(text, caption string) {
	h.messages = append(h.messages, message{text, caption})
}

type recordingSaver struct {
	paths []string
}

func (r *recordingSaver) Save(path string) bool {
	r.paths = append(r.paths, path)
	return true
}

func newHost(t *testing.T, build int) *fakeHost {
	t.Helper()
	return &fakeHost{
		build:      build,
		base:       0x400000,
		pluginPath: filepath.Join(t.TempDir(), "autosaver.auf"),
	}
}

func TestInfo(t *testing.T) {
	info := New().Info()

	if err := info.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if info.Name != "autosaver" {
		t.Errorf("Name = %q", info.Name)
	}
	if info.Information != "autosaver r2" {
		t.Errorf("Information = %q", info.Information)
	}
	for _, f := range []aviutl.FilterFlag{aviutl.FlagAlwaysActive, aviutl.FlagDispFilter, aviutl.FlagExInformation} {
		if !info.Has(f) {
			t.Errorf("flag %#x not set", f)
		}
	}
	if info.Has(aviutl.FlagActive) {
		t.Error("FlagActive set")
	}
}

func TestInitRejectsOtherBuilds(t *testing.T) {
	tests := []struct {
		name  string
		build int
	}{
		{"older", 10000},
		{"newer", 11004},
		{"zero", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newHost(t, tt.build)
			a := New(WithLogger(hclog.NewNullLogger()))

			err := a.Init(host)
			if !errors.Is(err, binding.ErrUnsupportedBuild) {
				t.Fatalf("Init() error = %v, want ErrUnsupportedBuild", err)
			}
			if len(host.messages) != 1 {
				t.Fatalf("dialogs shown = %d, want 1", len(host.messages))
			}
			if host.messages[0].text != RequiredVersionMessage || host.messages[0].caption != "autosaver" {
				t.Errorf("dialog = %+v", host.messages[0])
			}
			if a.State() != nil {
				t.Error("state created for rejected host")
			}

			settingPath := filepath.Join(filepath.Dir(host.pluginPath), setting.FileName)
			if _, err := os.Stat(settingPath); !os.IsNotExist(err) {
				t.Error("settings file created for rejected host")
			}
		})
	}
}

func TestInitBindFailure(t *testing.T) {
	host := newHost(t, aviutl.Build110)
	a := New(
		WithLogger(hclog.NewNullLogger()),
		WithBinder(func(int, uintptr) (state.Saver, error) {
			return nil, binding.ErrUnsupportedPlatform
		}),
	)

	err := a.Init(host)
	if !errors.Is(err, binding.ErrUnsupportedPlatform) {
		t.Fatalf("Init() error = %v, want ErrUnsupportedPlatform", err)
	}
	if len(host.messages) != 0 {
		t.Errorf("dialogs shown = %d, want 0", len(host.messages))
	}
}

func TestInitCreatesSettings(t *testing.T) {
	host := newHost(t, aviutl.Build110)
	saver := &recordingSaver{}

	var gotBuild int
	var gotBase uintptr
	a := New(
		WithLogger(hclog.NewNullLogger()),
		WithBinder(func(build int, base uintptr) (state.Saver, error) {
			gotBuild, gotBase = build, base
			return saver, nil
		}),
	)

	if err := a.Init(host); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if gotBuild != aviutl.Build110 || gotBase != 0x400000 {
		t.Errorf("bound build %d at %#x", gotBuild, gotBase)
	}
	if len(host.messages) != 0 {
		t.Errorf("dialogs shown = %d, want 0", len(host.messages))
	}
	if !a.State().Bound() {
		t.Error("state not bound")
	}

	body, err := os.ReadFile(a.State().SettingPath)
	if err != nil {
		t.Fatalf("settings file not created: %v", err)
	}
	if want := "{\n\t\"duration\" : 300\n}\n"; string(body) != want {
		t.Errorf("settings file = %q, want %q", body, want)
	}
	if a.Setting().Seconds != setting.DefaultSeconds {
		t.Errorf("Seconds = %d, want %d", a.Setting().Seconds, setting.DefaultSeconds)
	}
}

func TestInitReadsExistingSettings(t *testing.T) {
	host := newHost(t, aviutl.Build110)
	path := filepath.Join(filepath.Dir(host.pluginPath), setting.FileName)
	if err := os.WriteFile(path, []byte(`{"duration": 30}`), 0o644); err != nil {
		t.Fatal(err)
	}

	a := New(
		WithLogger(hclog.NewNullLogger()),
		WithBinder(func(int, uintptr) (state.Saver, error) { return &recordingSaver{}, nil }),
	)
	if err := a.Init(host); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if a.Setting().Seconds != 30 {
		t.Errorf("Seconds = %d, want 30", a.Setting().Seconds)
	}
}

func TestProcSavesAfterInterval(t *testing.T) {
	host := newHost(t, aviutl.Build110)
	saver := &recordingSaver{}

	start := time.Date(2024, 3, 4, 5, 6, 7, 0, time.Local)
	now := start
	a := New(
		WithLogger(hclog.NewNullLogger()),
		WithClock(func() time.Time { return now }),
		WithBinder(func(int, uintptr) (state.Saver, error) { return saver, nil }),
	)
	if err := a.Init(host); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	now = start.Add(299 * time.Second)
	if err := a.Proc(host, 1); err != nil {
		t.Fatalf("Proc() error = %v", err)
	}
	if len(saver.paths) != 0 {
		t.Fatalf("saved before interval: %v", saver.paths)
	}
	if host.sysInfoCalls != 1 {
		t.Errorf("get_sys_info called %d times, want only the init query", host.sysInfoCalls)
	}

	now = start.Add(301 * time.Second)
	if err := a.Proc(host, 1); err != nil {
		t.Fatalf("Proc() error = %v", err)
	}
	if len(saver.paths) != 1 {
		t.Fatalf("saves = %d, want 1", len(saver.paths))
	}

	want := filepath.Join(a.State().FallbackDir, autosave.FileName(now))
	if saver.paths[0] != want {
		t.Errorf("saved to %q, want %q", saver.paths[0], want)
	}
	if info, err := os.Stat(a.State().FallbackDir); err != nil || !info.IsDir() {
		t.Errorf("fallback directory missing: %v", err)
	}
}

func TestProcSavesBesideProject(t *testing.T) {
	host := newHost(t, aviutl.Build110)
	projectDir := t.TempDir()
	host.project = filepath.Join(projectDir, "edit.aup")
	saver := &recordingSaver{}

	start := time.Date(2024, 3, 4, 5, 6, 7, 0, time.Local)
	now := start
	a := New(
		WithLogger(hclog.NewNullLogger()),
		WithClock(func() time.Time { return now }),
		WithBinder(func(int, uintptr) (state.Saver, error) { return saver, nil }),
	)
	if err := a.Init(host); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	now = start.Add(time.Hour)
	a.Proc(host, 1)

	if len(saver.paths) != 1 {
		t.Fatalf("saves = %d, want 1", len(saver.paths))
	}
	if want := filepath.Join(projectDir, "2024-03-04-06-06-07.aup"); saver.paths[0] != want {
		t.Errorf("saved to %q, want %q", saver.paths[0], want)
	}
}

func TestProcBeforeInitIsNoop(t *testing.T) {
	host := newHost(t, aviutl.Build110)
	a := New(WithLogger(hclog.NewNullLogger()))

	if err := a.Proc(host, 1); err != nil {
		t.Errorf("Proc() error = %v", err)
	}
	if host.sysInfoCalls != 0 {
		t.Errorf("get_sys_info called %d times", host.sysInfoCalls)
	}
}

func TestLogFileFromEnvironment(t *testing.T) {
	t.Setenv("AUTOSAVER_LOG_FILE", "autosaver.log")
	t.Setenv("AUTOSAVER_LOG_LEVEL", "debug")

	host := newHost(t, aviutl.Build110)
	a := New(WithBinder(func(int, uintptr) (state.Saver, error) { return &recordingSaver{}, nil }))

	if err := a.Init(host); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := a.Exit(host); err != nil {
		t.Fatalf("Exit() error = %v", err)
	}

	logPath := filepath.Join(filepath.Dir(host.pluginPath), "autosaver.log")
	body, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(body), "autosave enabled") {
		t.Errorf("log file missing init line:\n%s", body)
	}
}
