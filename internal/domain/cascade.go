package domain

import "slices"

// Static provider/material lookups. These mirror the purchasing department's
// supplier agreements and change rarely enough to live in code.
var materialsByProvider = map[string][]string{
	"Mipsa":         {"D2", "Cobre", "Aluminio"},
	"LBO":           {"H13", "1018", "4140T"},
	"Grupo Collado": {"D2", "4140T", "H13", "1018", "Acetal"},
	"Cameisa":       {"Aluminio", "Cobre", "Acetal", "Nylamid"},
	"Surcosa":       {"1018", "Nylamid", "Acetal", "D2"},
	"Diace":         {"D2", "H13", "Aluminio", "4140T", "Cobre", "1018"},
}

var typeByMaterial = map[string]string{
	"D2":       "Metal",
	"Aluminio": "Metal",
	"Cobre":    "Metal",
	"4140T":    "Metal",
	"H13":      "Metal",
	"1018":     "Metal",
	"Acetal":   "Plastico",
	"Nylamid":  "Plastico",
}

// StandardProviders returns the providers that offer dimensioned materials,
// sorted for stable dropdown population.
func StandardProviders() []string {
	providers := make([]string, 0, len(materialsByProvider))
	for p := range materialsByProvider {
		providers = append(providers, p)
	}
	slices.Sort(providers)
	return providers
}

// MaterialsForProvider returns the material list for a provider. A nil result
// means the provider has no standard materials and the material control must
// be disabled outright.
func MaterialsForProvider(provider string) []string {
	materials := materialsByProvider[provider]
	if materials == nil {
		return nil
	}
	return slices.Clone(materials)
}

// TypeForMaterial derives the material type. ok is false for an empty or
// unrecognized material, which is a valid "unknown" state rather than an
// error: the derived type field is cleared and deactivated.
func TypeForMaterial(material string) (string, bool) {
	t, ok := typeByMaterial[material]
	return t, ok
}
