package domain

import "testing"

func slot(value string, locked bool) DimensionSlot {
	return DimensionSlot{Value: value, Locked: locked}
}

func TestReconcileExclusivity(t *testing.T) {
	tests := []struct {
		name    string
		state   DimensionState
		changed FieldID
		want    DimensionState
	}{
		{
			name:    "all_empty_stays_unlocked",
			state:   DimensionState{},
			changed: "",
			want:    DimensionState{},
		},
		{
			name: "diameter_locks_width_and_height",
			state: DimensionState{
				Diameter: slot("5", false),
			},
			changed: FieldDiameter,
			want: DimensionState{
				Diameter: slot("5", false),
				Width:    slot(Sentinel, true),
				Height:   slot(Sentinel, true),
			},
		},
		{
			name: "width_locks_diameter",
			state: DimensionState{
				Width: slot("10", false),
			},
			changed: FieldWidth,
			want: DimensionState{
				Width:    slot("10", false),
				Diameter: slot(Sentinel, true),
			},
		},
		{
			name: "height_alone_locks_diameter",
			state: DimensionState{
				Height: slot("3", false),
			},
			changed: FieldHeight,
			want: DimensionState{
				Height:   slot("3", false),
				Diameter: slot(Sentinel, true),
			},
		},
		{
			name: "diameter_edit_rejected_when_width_set",
			state: DimensionState{
				Width:    slot("10", false),
				Diameter: slot("5", false),
			},
			changed: FieldDiameter,
			want: DimensionState{
				Width:    slot("10", false),
				Diameter: slot(Sentinel, true),
			},
		},
		{
			name: "width_edit_rejected_when_diameter_set",
			state: DimensionState{
				Width:    slot("10", false),
				Diameter: slot("5", false),
			},
			changed: FieldWidth,
			want: DimensionState{
				Width:    slot(Sentinel, true),
				Height:   slot(Sentinel, true),
				Diameter: slot("5", false),
			},
		},
		{
			name: "clearing_diameter_unlocks_width_and_height",
			state: DimensionState{
				Width:    slot(Sentinel, true),
				Height:   slot(Sentinel, true),
				Diameter: slot("", false),
			},
			changed: FieldDiameter,
			want:    DimensionState{},
		},
		{
			name: "clearing_width_and_height_unlocks_diameter",
			state: DimensionState{
				Width:    slot("", false),
				Height:   slot("", false),
				Diameter: slot(Sentinel, true),
			},
			changed: FieldWidth,
			want:    DimensionState{},
		},
		{
			name: "length_is_independent_of_diameter",
			state: DimensionState{
				Length:   slot("20", false),
				Diameter: slot("5", false),
			},
			changed: FieldDiameter,
			want: DimensionState{
				Length:   slot("20", false),
				Width:    slot(Sentinel, true),
				Height:   slot(Sentinel, true),
				Diameter: slot("5", false),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.state
			got.Reconcile(tt.changed)
			if got != tt.want {
				t.Errorf("Reconcile(%q) = %+v, want %+v", tt.changed, got, tt.want)
			}
			if got.Conflict() {
				t.Errorf("Reconcile(%q) left a conflicting state: %+v", tt.changed, got)
			}
		})
	}
}

func TestReconcileIdempotent(t *testing.T) {
	states := []DimensionState{
		{},
		{Diameter: slot("5", false)},
		{Width: slot("10", false), Height: slot("4", false)},
		{Width: slot("10", false), Diameter: slot("5", false)},
		{Length: slot("20", false), Width: slot(Sentinel, true), Height: slot(Sentinel, true), Diameter: slot("5", false)},
		{Width: slot(Sentinel, true), Height: slot(Sentinel, true), Diameter: slot("", false)},
	}
	for _, state := range states {
		once := state
		once.Reconcile("")
		twice := once
		twice.Reconcile("")
		if once != twice {
			t.Errorf("Reconcile is not idempotent for %+v: first %+v, second %+v", state, once, twice)
		}
	}
}

func TestReconcileRejectsDiameterAgainstWidth(t *testing.T) {
	state := DimensionState{Width: slot("10", false)}
	state.Reconcile(FieldWidth)

	// The UI keeps the diameter control disabled here; even so, an edit that
	// slips through is reverted.
	state.Diameter.Value = "7"
	state.Reconcile(FieldDiameter)

	if state.Width.Value != "10" {
		t.Errorf("width changed: got %q, want %q", state.Width.Value, "10")
	}
	if state.Diameter.Value != Sentinel || !state.Diameter.Locked {
		t.Errorf("diameter not reverted and re-locked: %+v", state.Diameter)
	}
}

func TestCylinderSet(t *testing.T) {
	state := DimensionState{}
	state.Diameter.Value = "5"
	state.Reconcile(FieldDiameter)
	state.Length.Value = "20"
	state.Reconcile(FieldLength)

	if !state.CylinderSet() {
		t.Errorf("diameter=5 length=20 should be a complete cylindrical set: %+v", state)
	}
	if state.BlockSet() {
		t.Errorf("cylindrical state should not also be a block set: %+v", state)
	}
}

func TestSlotReal(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"  ", false},
		{Sentinel, false},
		{"10", true},
		{" 10 ", true},
	}
	for _, tt := range tests {
		s := DimensionSlot{Value: tt.value}
		if got := s.Real(); got != tt.want {
			t.Errorf("Real(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
