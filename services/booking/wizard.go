package booking

import (
	"errors"

	"meetsync/utils/slot"
)

// Wizard steps. The flow is two steps: pick a date and slot, then confirm.
const (
	StepPick    = "pick"
	StepConfirm = "confirm"
)

// Wizard modes. One parameterized flow serves both the first booking and the
// reschedule of an existing one.
const (
	ModeInitial    = "initial-booking"
	ModeReschedule = "reschedule"
)

// ErrNoSlotSelected rejects advancing to the confirm step without a slot.
var ErrNoSlotSelected = errors.New("no slot selected")

// Wizard holds the state of one booking session. It is a plain value object
// owned by the presentation layer; it is never persisted and nothing else
// writes it.
type Wizard struct {
	Mode         string
	Timezone     string
	HourDisplay  string // slot.Display12 or slot.Display24
	SelectedDate string // 2006-01-02, empty when none
	SelectedSlot string // "HH:mm", empty when none

	step string
}

// NewWizard starts a session at the pick step.
func NewWizard(mode, timezone, hourDisplay string) *Wizard {
	if hourDisplay != slot.Display24 {
		hourDisplay = slot.Display12
	}
	return &Wizard{
		Mode:        mode,
		Timezone:    timezone,
		HourDisplay: hourDisplay,
		step:        StepPick,
	}
}

// Step returns the current wizard step.
func (w *Wizard) Step() string { return w.step }

// SelectDate picks a date. Any slot chosen for the previous date is cleared;
// the wizard stays at the pick step.
func (w *Wizard) SelectDate(date string) {
	w.SelectedDate = date
	w.SelectedSlot = ""
	w.step = StepPick
}

// SelectSlot picks (or with an empty label, clears) a slot. The step does
// not change.
func (w *Wizard) SelectSlot(label string) {
	w.SelectedSlot = label
}

// SetHourDisplay switches between 12h and 24h rendering.
func (w *Wizard) SetHourDisplay(display string) {
	if display == slot.Display12 || display == slot.Display24 {
		w.HourDisplay = display
	}
}

// Advance moves to the confirm step. Valid only while a slot is selected.
func (w *Wizard) Advance() error {
	if w.SelectedSlot == "" {
		return ErrNoSlotSelected
	}
	w.step = StepConfirm
	return nil
}

// Back returns to the pick step keeping the current selection.
func (w *Wizard) Back() {
	w.step = StepPick
}

// Reset clears the session back to a fresh pick step. Called after a
// successful submission or on cancel.
func (w *Wizard) Reset() {
	w.SelectedDate = ""
	w.SelectedSlot = ""
	w.step = StepPick
}

// Revalidate checks the current selection against a freshly reconciled
// bookable set. When the selected slot is no longer in the set — the date
// changed, or another attendee booked it — the selection is cleared and the
// wizard drops back to the pick step. Reports whether anything was cleared.
func (w *Wizard) Revalidate(bookable []string) bool {
	if w.SelectedSlot == "" {
		return false
	}
	for _, s := range bookable {
		if s == w.SelectedSlot {
			return false
		}
	}
	w.SelectedSlot = ""
	w.step = StepPick
	return true
}
