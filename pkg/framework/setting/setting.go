// Package setting loads and stores the autosave interval file.
package setting

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/knadh/koanf/providers/file"
)

// FileName is the settings file created beside the plugin.
const FileName = "autosaver.json"

// DefaultSeconds is the autosave interval used when no value is configured.
const DefaultSeconds = 300

const durationKey = "duration"

// Setting holds the user-configurable autosave interval.
type Setting struct {
	// Seconds is the minimum number of whole seconds between autosaves.
	Seconds int64
}

// Default returns the setting used before anything is loaded.
func Default() Setting {
	return Setting{Seconds: DefaultSeconds}
}

// Interval returns Seconds as a time.Duration, saturating instead of
// overflowing for values beyond ~292 years.
func (s Setting) Interval() time.Duration {
	const maxSeconds = math.MaxInt64 / int64(time.Second)
	switch {
	case s.Seconds > maxSeconds:
		return time.Duration(math.MaxInt64)
	case s.Seconds < -maxSeconds:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(s.Seconds) * time.Second
}

// Load reads path and applies a numeric top-level "duration" member.
//
// A document that is not valid JSON, or not an object, leaves the setting
// untouched and is not an error. So is a "duration" that is not a number or
// has no leading integer. Only failing to read the file is reported.
func (s *Setting) Load(path string) error {
	buf, err := file.Provider(path).ReadBytes()
	if err != nil {
		return fmt.Errorf("read setting %s: %w", path, err)
	}

	if seconds, ok := parseDuration(buf); ok {
		s.Seconds = seconds
	}
	return nil
}

// Store overwrites path with the setting. The layout is fixed.
func (s Setting) Store(path string) error {
	body := "{\n\t\"" + durationKey + "\" : " + strconv.FormatInt(s.Seconds, 10) + "\n}\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write setting %s: %w", path, err)
	}
	return nil
}

// LoadOrCreate loads path if it exists and otherwise writes the default to
// it. The returned setting is usable even when err is non-nil.
func LoadOrCreate(path string) (Setting, error) {
	s := Default()

	_, err := os.Stat(path)
	switch {
	case err == nil:
		return s, s.Load(path)
	case errors.Is(err, fs.ErrNotExist):
		return s, s.Store(path)
	default:
		return s, fmt.Errorf("stat setting %s: %w", path, err)
	}
}

// parseDuration walks the top-level object and returns the last numeric
// "duration" member that yields an integer.
func parseDuration(buf []byte) (int64, bool) {
	if !json.Valid(buf) {
		return 0, false
	}

	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return 0, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return 0, false
	}

	var (
		seconds int64
		found   bool
	)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return 0, false
		}
		key, _ := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return 0, false
		}
		if key != durationKey {
			continue
		}

		num, ok := value.(json.Number)
		if !ok {
			continue
		}
		if n, ok := leadingInt(num.String()); ok {
			seconds, found = n, true
		}
	}
	return seconds, found
}

// leadingInt parses the optional sign and decimal digits at the start of a
// number token, ignoring any fraction or exponent that follows.
func leadingInt(token string) (int64, bool) {
	end := 0
	if end < len(token) && token[end] == '-' {
		end++
	}
	digits := end
	for end < len(token) && token[end] >= '0' && token[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.ParseInt(token[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
