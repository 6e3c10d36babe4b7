package security

import (
	"github.com/hashicorp/go-version"
	"github.com/ztrue/tracerr"
)

// UserSchemaVersion is the current version of the user table family.
const UserSchemaVersion = "0.1.3"

// flagWidthHistory records, per schema version, how many capability bits
// were defined at that version. Only entries whose width differs from the
// previous one produce a migration step.
var flagWidthHistory = []struct {
	version string
	width   int
}{
	{"0.0.1", 10},
	{"0.0.2", 16},
	{"0.0.3", 19},
	{"0.1.0", 23},
	{"0.1.1", 29},
	{"0.1.2", 32},
	{"0.1.3", 29},
}

// Transition is one capability width change. Applying it rewrites every
// stored bitset equal to AllBits(OldWidth) to AllBits(NewWidth), so a user
// who was an unrestricted administrator under the old width keeps the bits
// introduced since. Any other stored value is left untouched.
type Transition struct {
	Version  string
	OldWidth int
	NewWidth int
}

// FlagTransitions returns the ordered transitions to apply when upgrading
// the user table from stored to the current schema version. The stored
// version not appearing in the history is fine, transitions strictly newer
// than it still apply.
func FlagTransitions(stored string) ([]Transition, error) {
	from, err := version.NewVersion(stored)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	var ret []Transition
	width := 0
	for _, h := range flagWidthHistory {
		v, err := version.NewVersion(h.version)
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		if v.LessThanOrEqual(from) {
			width = h.width
			continue
		}
		if width != 0 && h.width != width {
			ret = append(ret, Transition{
				Version:  h.version,
				OldWidth: width,
				NewWidth: h.width,
			})
		}
		width = h.width
	}
	return ret, nil
}
