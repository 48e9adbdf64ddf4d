package domain

import "strings"

// DimensionSlot is one of the four dimension inputs. A locked slot holds the
// sentinel and must not be directly editable.
type DimensionSlot struct {
	Value  string
	Locked bool
}

// Real reports whether the slot holds an actual user value, as opposed to
// being empty or holding the sentinel.
func (s DimensionSlot) Real() bool {
	v := strings.TrimSpace(s.Value)
	return v != "" && v != Sentinel
}

func (s *DimensionSlot) lock() {
	s.Value = Sentinel
	s.Locked = true
}

func (s *DimensionSlot) unlock() {
	s.Locked = false
	if s.Value == Sentinel {
		s.Value = ""
	}
}

// DimensionState holds the four dimension slots of a standard draft.
// Length stays independent; diameter and width+height exclude each other.
type DimensionState struct {
	Length   DimensionSlot
	Width    DimensionSlot
	Height   DimensionSlot
	Diameter DimensionSlot
}

// Slot returns the slot for a dimension field ID, nil for other fields.
func (d *DimensionState) Slot(field FieldID) *DimensionSlot {
	switch field {
	case FieldLength:
		return &d.Length
	case FieldWidth:
		return &d.Width
	case FieldHeight:
		return &d.Height
	case FieldDiameter:
		return &d.Diameter
	}
	return nil
}

// Reconcile restores the exclusivity invariant after the given field changed.
// Conflicting edits are rejected by reverting the just-changed field to empty;
// afterwards the locked state is re-derived from the surviving values.
// Passing an empty field ID re-derives without conflict resolution, which is
// how a loaded or reset state is normalized. Reconcile is idempotent.
func (d *DimensionState) Reconcile(changed FieldID) {
	switch changed {
	case FieldDiameter:
		if d.Diameter.Real() && (d.Width.Real() || d.Height.Real()) {
			d.Diameter.Value = ""
		}
	case FieldWidth, FieldHeight:
		if slot := d.Slot(changed); slot.Real() && d.Diameter.Real() {
			slot.Value = ""
		}
	}

	switch {
	case d.Diameter.Real():
		d.Width.lock()
		d.Height.lock()
		d.Diameter.unlock()
	case d.Width.Real() || d.Height.Real():
		d.Diameter.lock()
		d.Width.unlock()
		d.Height.unlock()
	default:
		d.Length.unlock()
		d.Width.unlock()
		d.Height.unlock()
		d.Diameter.unlock()
	}
}

// CylinderSet reports whether diameter+length form a complete dimension set.
func (d *DimensionState) CylinderSet() bool {
	return d.Diameter.Real() && d.Length.Real()
}

// BlockSet reports whether length+width+height form a complete dimension set.
func (d *DimensionState) BlockSet() bool {
	return d.Length.Real() && d.Width.Real() && d.Height.Real()
}

// Conflict reports whether diameter and width or height hold real values at
// the same time. A reachable state never conflicts after Reconcile; the
// validator still checks it so a conflict is reported instead of a bogus
// "incomplete set" message.
func (d *DimensionState) Conflict() bool {
	return d.Diameter.Real() && (d.Width.Real() || d.Height.Real())
}
