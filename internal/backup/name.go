package backup

import (
	"fmt"
	"strings"
	"time"

	"github.com/zettelkit/zettelkit/internal/constants"
)

// ErrInvalidName is returned for entries that are not backup artifacts.
var ErrInvalidName = fmt.Errorf("not a backup archive name")

// Name is a parsed backup artifact name of the form
// zettelkasten-YYYY-MM-DD-HHMM.tar.gz.age. The raw string sorts
// lexicographically in chronological order because all embedded fields are
// fixed-width and zero-padded.
type Name struct {
	Raw  string
	Time time.Time
}

// YearMonth returns the YYYY-MM retention bucket key.
func (n Name) YearMonth() string {
	return n.Time.Format("2006-01")
}

// ParseName parses a backup artifact name. It fails rather than guessing on
// anything that does not match the expected pattern, including impossible
// calendar dates.
func ParseName(raw string) (Name, error) {
	core, ok := strings.CutPrefix(raw, constants.BackupPrefix)
	if !ok {
		return Name{}, fmt.Errorf("%w: %q", ErrInvalidName, raw)
	}
	core, ok = strings.CutSuffix(core, constants.BackupSuffix)
	if !ok {
		return Name{}, fmt.Errorf("%w: %q", ErrInvalidName, raw)
	}

	ts, err := time.Parse(constants.BackupTimeLayout, core)
	if err != nil {
		return Name{}, fmt.Errorf("%w: %q", ErrInvalidName, raw)
	}

	// time.Parse accepts some non-zero-padded forms; round-trip to enforce
	// the fixed-width layout.
	if ts.Format(constants.BackupTimeLayout) != core {
		return Name{}, fmt.Errorf("%w: %q", ErrInvalidName, raw)
	}

	return Name{Raw: raw, Time: ts}, nil
}

// FormatName renders the backup artifact name for the given timestamp.
func FormatName(t time.Time) string {
	return constants.BackupPrefix + t.Format(constants.BackupTimeLayout) + constants.BackupSuffix
}
