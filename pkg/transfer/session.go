package transfer

import "time"

const (
	// NotOwner marks a session whose board content was produced elsewhere.
	NotOwner = -1
	// PasteOffset is the distance, on both axes, between repeated pastes of
	// the same content.
	PasteOffset = 10.0
)

// Session tracks repeated pastes of one board's content so each paste lands
// offset from the previous one. It is owned by its caller; nothing in this
// package keeps sessions globally.
type Session struct {
	Board       string    `json:"board"`
	TimesPasted int       `json:"times_pasted"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSession returns a session for board that does not own its content.
func NewSession(board string) *Session {
	return &Session{Board: board, TimesPasted: NotOwner, UpdatedAt: time.Now()}
}

// ObtainedOwnership records that this side put the content with fingerprint
// fp on the board. The paste counter restarts.
func (s *Session) ObtainedOwnership(fp string) {
	s.Fingerprint = fp
	s.TimesPasted = 0
	s.UpdatedAt = time.Now()
}

// LostOwnership records that the board content was replaced by someone else.
// Pastes no longer shift until ownership is obtained again.
func (s *Session) LostOwnership() {
	s.Fingerprint = ""
	s.TimesPasted = NotOwner
	s.UpdatedAt = time.Now()
}

// IsOwner reports whether the session owns the board content.
func (s *Session) IsOwner() bool { return s.TimesPasted != NotOwner }

// Sync compares the session with the content currently on the board and
// drops ownership if the fingerprints differ.
func (s *Session) Sync(fp string) {
	if s.IsOwner() && fp != s.Fingerprint {
		s.LostOwnership()
	}
}

// NextShift counts one more paste and returns the offset to apply to it:
// PasteOffset times the number of pastes so far, or zero for content the
// session does not own.
func (s *Session) NextShift() (dx, dy float64) {
	return s.NextShiftBy(PasteOffset)
}

// NextShiftBy is NextShift with a configured offset.
func (s *Session) NextShiftBy(offset float64) (dx, dy float64) {
	if !s.IsOwner() {
		return 0, 0
	}
	s.TimesPasted++
	s.UpdatedAt = time.Now()
	shift := float64(s.TimesPasted) * offset
	return shift, shift
}
