package domain

import (
	"reflect"
	"testing"
)

func TestStandardProviders(t *testing.T) {
	want := []string{"Cameisa", "Diace", "Grupo Collado", "LBO", "Mipsa", "Surcosa"}
	if got := StandardProviders(); !reflect.DeepEqual(got, want) {
		t.Errorf("StandardProviders() = %v, want %v", got, want)
	}
}

func TestMaterialsForProvider(t *testing.T) {
	got := MaterialsForProvider("Mipsa")
	want := []string{"D2", "Cobre", "Aluminio"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MaterialsForProvider(Mipsa) = %v, want %v", got, want)
	}

	// The result is a copy; mutating it must not poison later lookups.
	got[0] = "mutated"
	if again := MaterialsForProvider("Mipsa"); !reflect.DeepEqual(again, want) {
		t.Errorf("lookup after mutation = %v, want %v", again, want)
	}

	if m := MaterialsForProvider(CatalogProvider); m != nil {
		t.Errorf("MaterialsForProvider(%q) = %v, want nil", CatalogProvider, m)
	}
	if m := MaterialsForProvider(""); m != nil {
		t.Errorf("MaterialsForProvider(\"\") = %v, want nil", m)
	}
}

func TestTypeForMaterial(t *testing.T) {
	tests := []struct {
		material string
		want     string
		wantOK   bool
	}{
		{"Aluminio", "Metal", true},
		{"1018", "Metal", true},
		{"Acetal", "Plastico", true},
		{"Nylamid", "Plastico", true},
		{"Unobtainium", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := TypeForMaterial(tt.material)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("TypeForMaterial(%q) = (%q, %v), want (%q, %v)",
				tt.material, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestEveryStandardMaterialHasType(t *testing.T) {
	for _, provider := range StandardProviders() {
		for _, material := range MaterialsForProvider(provider) {
			if _, ok := TypeForMaterial(material); !ok {
				t.Errorf("provider %q offers %q with no material type", provider, material)
			}
		}
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{" 42 ", 42, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"1.5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePositiveInt(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePositiveInt(%q) = (%d, %v), want (%d, wantErr %v)",
				tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestParsePositiveNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1", 1, false},
		{"2.5", 2.5, false},
		{"0", 0, true},
		{"-0.1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePositiveNumber(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePositiveNumber(%q) = (%v, %v), want (%v, wantErr %v)",
				tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}
