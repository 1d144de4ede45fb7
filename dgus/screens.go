package dgus

import "time"

// Screens tracks the shown page, pending page changes and the message
// surface (four lines and the status slot).
type Screens struct {
	current Screen
	next    Screen
	pending bool

	fullUpdate bool
	waitReturn Screen

	lines      [4]string
	linesDirty bool

	status        string
	statusDirty   bool
	statusExpire  time.Time
	statusTimeout time.Duration

	saveAt    time.Time
	saveDelay time.Duration

	now func() time.Time
}

// NewScreens starts on the boot screen.
func NewScreens(statusTimeout, saveDelay time.Duration, now func() time.Time) *Screens {
	if now == nil {
		now = time.Now
	}
	return &Screens{
		current:       ScreenBoot,
		waitReturn:    ScreenHome,
		statusTimeout: statusTimeout,
		saveDelay:     saveDelay,
		now:           now,
	}
}

// Current returns the page shown on the display
func (s *Screens) Current() Screen {
	return s.current
}

// Next returns the page a pending change will switch to, or the current page.
func (s *Screens) Next() Screen {
	if s.pending {
		return s.next
	}
	return s.current
}

// TriggerScreenChange switches pages on the next cycle.
func (s *Screens) TriggerScreenChange(screen Screen) {
	s.next = screen
	s.pending = true
}

// TriggerFullUpdate refreshes every VP of the current page on the next cycle.
func (s *Screens) TriggerFullUpdate() {
	s.fullUpdate = true
}

// TriggerEEPROMSave schedules a settings save, coalescing repeated
// requests (volume and brightness sliders send many frames).
func (s *Screens) TriggerEEPROMSave() {
	s.saveAt = s.now().Add(s.saveDelay)
}

// ShowWaitScreen shows WAIT and remembers where to return once the
// machine is idle again.
func (s *Screens) ShowWaitScreen(ret Screen) {
	s.waitReturn = ret
	s.TriggerScreenChange(ScreenWait)
}

// WaitReturn is the page WAIT returns to
func (s *Screens) WaitReturn() Screen {
	return s.waitReturn
}

// SetMessageLine sets line n (1-4)
func (s *Screens) SetMessageLine(n int, msg string) {
	if n < 1 || n > len(s.lines) {
		return
	}
	s.lines[n-1] = msg
	s.linesDirty = true
}

// SetMessageLines replaces all four lines.
func (s *Screens) SetMessageLines(l1, l2, l3, l4 string) {
	s.lines = [4]string{l1, l2, l3, l4}
	s.linesDirty = true
}

// MessageLine returns line n (1-4)
func (s *Screens) MessageLine(n int) string {
	if n < 1 || n > len(s.lines) {
		return ""
	}
	return s.lines[n-1]
}

// SetStatusMessage shows msg in the status slot for the status timeout.
func (s *Screens) SetStatusMessage(msg string) {
	s.SetStatusMessageFor(msg, s.statusTimeout)
}

// SetStatusMessageFor shows msg for d; zero keeps it until replaced.
func (s *Screens) SetStatusMessageFor(msg string, d time.Duration) {
	s.status = msg
	s.statusDirty = true
	if d > 0 && msg != "" {
		s.statusExpire = s.now().Add(d)
	} else {
		s.statusExpire = time.Time{}
	}
}

// StatusMessage returns the status slot text
func (s *Screens) StatusMessage() string {
	return s.status
}

func (s *Screens) expireStatus(now time.Time) {
	if !s.statusExpire.IsZero() && !now.Before(s.statusExpire) {
		s.SetStatusMessageFor("", 0)
	}
}

func (s *Screens) saveDue(now time.Time) bool {
	if s.saveAt.IsZero() || now.Before(s.saveAt) {
		return false
	}
	s.saveAt = time.Time{}
	return true
}

// applyChange performs a pending page change and reports whether it did.
func (s *Screens) applyChange() bool {
	if !s.pending {
		return false
	}
	s.pending = false
	s.current = s.next
	s.fullUpdate = true
	return true
}

func (s *Screens) takeFullUpdate() bool {
	full := s.fullUpdate
	s.fullUpdate = false
	return full
}

func (s *Screens) takeLinesDirty() bool {
	dirty := s.linesDirty
	s.linesDirty = false
	return dirty
}

func (s *Screens) takeStatusDirty() bool {
	dirty := s.statusDirty
	s.statusDirty = false
	return dirty
}

// cancelSave drops a scheduled save and reports whether there was one.
func (s *Screens) cancelSave() bool {
	pending := !s.saveAt.IsZero()
	s.saveAt = time.Time{}
	return pending
}
