// pkg/document/ident.go

package document

import (
	"fmt"
	"time"
)

// Generator formats business ids as "{prefix}-{YYYY}{MM}{seq}" with seq
// zero-padded to three digits. Sequence numbers are supplied by the caller.
type Generator struct {
	Now func() time.Time
}

// NewGenerator returns a Generator on the local wall clock.
func NewGenerator() Generator {
	return Generator{Now: time.Now}
}

// Generate formats an id for seq at the generator's current month.
func (g Generator) Generate(prefix string, seq int64) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return FormatID(prefix, seq, now())
}

// FormatID formats an id for seq at the calendar month of at.
// Sequences of 1000 and above widen rather than truncate.
func FormatID(prefix string, seq int64, at time.Time) string {
	return fmt.Sprintf("%s-%04d%02d%03d", prefix, at.Year(), int(at.Month()), seq)
}
