package domain

import (
	"slices"
	"strings"
)

// Sentinel is the value written into a dimension field that is locked out by
// the exclusivity rule. It is distinct from an empty, not-yet-filled field.
const Sentinel = "N/A"

// Mode selects between the two mutually exclusive entry branches of a draft.
type Mode uint8

const (
	// ModeStandard enters one dimensioned material against a selectable provider.
	ModeStandard Mode = iota
	// ModeCatalog enters catalog line items resolved against the master list.
	ModeCatalog
)

func (m Mode) String() string {
	if m == ModeCatalog {
		return "catalogo"
	}
	return "estandar"
}

// CatalogProvider is the provider whose selection switches a form into
// catalog line-item entry.
const CatalogProvider = "Torni"

// FieldID identifies a form field. The values double as the wire keys the
// backend expects, so validator output can be mapped straight onto widgets
// and payload keys alike.
type FieldID string

const (
	FieldRequester  FieldID = "nombre_solicitante"
	FieldProject    FieldID = "proyecto"
	FieldDate       FieldID = "fecha_solicitud"
	FieldDepartment FieldID = "departamento_area"
	FieldProvider   FieldID = "proveedor"
	FieldNotes      FieldID = "especificaciones_adicionales"
	FieldFolio      FieldID = "folio_solicitud"

	FieldQuantity     FieldID = "cantidad_solicitada"
	FieldMaterial     FieldID = "nombre_material"
	FieldMaterialType FieldID = "tipo_material"
	FieldUnit         FieldID = "unidad_medida"

	FieldLength   FieldID = "largo"
	FieldWidth    FieldID = "ancho"
	FieldHeight   FieldID = "alto"
	FieldDiameter FieldID = "diametro"

	// FieldItems addresses the line-item table as a whole.
	FieldItems FieldID = "torni_items"
)

// CommonFields are always enabled regardless of mode.
type CommonFields struct {
	Requester  string
	Project    string
	Department string
	Date       string
	Provider   string
	Notes      string
}

// StandardFields are active only in ModeStandard.
type StandardFields struct {
	Quantity     string
	Material     string
	MaterialType string
	Unit         string
	Dimensions   DimensionState
}

// LineItem is one row of the catalog line-item table. Quantity is kept as the
// raw typed text; it is parsed during validation and payload building.
// ID is only ever written from a resolved catalog entry, never typed.
type LineItem struct {
	Quantity    string
	ID          string
	Description string
}

// Complete reports whether the row carries everything a submission needs.
func (it LineItem) Complete() bool {
	qty, err := ParsePositiveInt(it.Quantity)
	if err != nil || qty < 1 {
		return false
	}
	return strings.TrimSpace(it.ID) != "" && strings.TrimSpace(it.Description) != ""
}

// Draft is the in-progress state of one submission. It is created at startup,
// mutated in place by the UI event handlers, and replaced by a fresh draft
// only after a server-confirmed success.
type Draft struct {
	Mode     Mode
	Folio    string
	Common   CommonFields
	Standard StandardFields
	Items    []LineItem
}

// NewDraft returns an empty draft with a freshly generated folio.
func NewDraft() *Draft {
	return &Draft{
		Folio:    NewFolio(),
		Standard: StandardFields{Quantity: "1"},
	}
}

// FieldError is one validation failure, addressed to the field that caused it.
type FieldError struct {
	Field   FieldID
	Message string
	// Row is the zero-based line-item index for table errors, -1 otherwise.
	Row int
}

// CatalogEntry is one record of the read-only master list.
type CatalogEntry struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// DimensionTable maps a unit-of-measure label to its suggested standard
// dimension values. Advisory only: a value outside the table is not an error.
type DimensionTable map[string][]string

// Units returns the unit labels with at least one suggestion, sorted.
func (t DimensionTable) Units() []string {
	units := make([]string, 0, len(t))
	for unit := range t {
		units = append(units, unit)
	}
	slices.Sort(units)
	return units
}

// ForUnit returns the suggested dimensions for a unit, nil when unknown.
func (t DimensionTable) ForUnit(unit string) []string {
	return t[unit]
}
