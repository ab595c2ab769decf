package severity

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Severity is an ordered log importance rank. Lower values are less severe.
// The zero value is Debug.
type Severity int

const (
	Debug Severity = iota
	Info
	Warn
	Error
	Fatal
	// Unknown ranks above Fatal and is used for messages of indeterminate
	// severity that must always pass level filtering.
	Unknown
)

var names = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL", "UNKNOWN"}

// String returns the canonical upper-case name of the severity.
// Out-of-range values render as their numeric rank.
func (s Severity) String() string {
	if s < Debug || s > Unknown {
		return strconv.Itoa(int(s))
	}
	return names[s]
}

// Valid reports whether s is one of the defined severities.
func (s Severity) Valid() bool {
	return s >= Debug && s <= Unknown
}

// Level converts the severity to the equivalent slog.Level. Fatal and
// Unknown map above slog.LevelError, preserving the total order.
func (s Severity) Level() slog.Level {
	switch s {
	case Debug:
		return slog.LevelDebug
	case Info:
		return slog.LevelInfo
	case Warn:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	case Fatal:
		return slog.LevelError + 4
	default:
		return slog.LevelError + 8
	}
}

// FromSlog converts a slog.Level to the nearest Severity. Levels between
// the named slog constants round down, matching slog's own filtering.
func FromSlog(l slog.Level) Severity {
	switch {
	case l < slog.LevelInfo:
		return Debug
	case l < slog.LevelWarn:
		return Info
	case l < slog.LevelError:
		return Warn
	case l < slog.LevelError+4:
		return Error
	case l < slog.LevelError+8:
		return Fatal
	default:
		return Unknown
	}
}

// Coerce converts v into a Severity. It accepts a Severity, a
// case-insensitive level name, or an integer rank. Any other input,
// including nil, fails with ErrInvalidSeverity; callers that treat nil as
// "no override" must special-case it before calling Coerce.
//
// Coerce is idempotent over its own output: Coerce(Coerce(x)) == Coerce(x).
func Coerce(v any) (Severity, error) {
	switch val := v.(type) {
	case Severity:
		if !val.Valid() {
			return 0, fmt.Errorf("%w: rank %d out of range", ErrInvalidSeverity, int(val))
		}
		return val, nil
	case string:
		return parse(val)
	case int:
		s := Severity(val)
		if !s.Valid() {
			return 0, fmt.Errorf("%w: rank %d out of range", ErrInvalidSeverity, val)
		}
		return s, nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidSeverity, v)
	}
}

// MustCoerce is like Coerce but panics on invalid input. Intended for
// configuration-time constants where failure should prevent startup.
func MustCoerce(v any) Severity {
	s, err := Coerce(v)
	if err != nil {
		panic(err)
	}
	return s
}

// Compare returns -1, 0, or +1 when a ranks below, equal to, or above b.
func Compare(a, b Severity) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler, rendering the canonical
// name so severities serialize cleanly into YAML and env-style config.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: rank %d out of range", ErrInvalidSeverity, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Parsing is
// case-insensitive and fails fast with ErrInvalidSeverity, so invalid
// configuration surfaces at load time rather than at the first log call.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func parse(raw string) (Severity, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	for i, n := range names {
		if name == n {
			return Severity(i), nil
		}
	}
	if rank, err := strconv.Atoi(name); err == nil {
		s := Severity(rank)
		if s.Valid() {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSeverity, raw)
}
