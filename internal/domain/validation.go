package domain

import (
	"fmt"
	"strings"
)

// Validate checks a draft against the business rules and returns every
// failure at once, in field order. A rule that spans several fields yields
// one entry per field so all of them can be marked; use Messages to collapse
// the list for display. An empty result means the draft may be submitted.
// Validate never mutates the draft.
func Validate(d *Draft) []FieldError {
	var errs []FieldError
	add := func(field FieldID, row int, message string) {
		errs = append(errs, FieldError{Field: field, Message: message, Row: row})
	}

	required := []struct {
		field FieldID
		value string
	}{
		{FieldRequester, d.Common.Requester},
		{FieldDate, d.Common.Date},
		{FieldProvider, d.Common.Provider},
		{FieldDepartment, d.Common.Department},
		{FieldProject, d.Common.Project},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			add(r.field, -1, fmt.Sprintf("%q obligatorio.", FieldLabel(r.field)))
		}
	}

	switch d.Mode {
	case ModeStandard:
		errs = append(errs, validateStandard(&d.Standard)...)
	case ModeCatalog:
		errs = append(errs, validateItems(d.Items)...)
	}

	return errs
}

// Messages returns the distinct messages of a validation result in first
// occurrence order, ready for display.
func Messages(errs []FieldError) []string {
	if len(errs) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(errs))
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		if seen[e.Message] {
			continue
		}
		seen[e.Message] = true
		out = append(out, e.Message)
	}
	return out
}

func validateStandard(s *StandardFields) []FieldError {
	var errs []FieldError
	add := func(field FieldID, message string) {
		errs = append(errs, FieldError{Field: field, Message: message, Row: -1})
	}

	if _, err := ParsePositiveNumber(s.Quantity); err != nil {
		add(FieldQuantity, fmt.Sprintf("%q debe ser un número mayor que 0.", FieldLabel(FieldQuantity)))
	}
	for _, r := range []struct {
		field FieldID
		value string
	}{
		{FieldMaterial, s.Material},
		{FieldMaterialType, s.MaterialType},
		{FieldUnit, s.Unit},
	} {
		if strings.TrimSpace(r.value) == "" {
			add(r.field, fmt.Sprintf("%q obligatorio.", FieldLabel(r.field)))
		}
	}

	// A conflict is always reported as such; the incomplete-set message would
	// only mislead when the real problem is the exclusivity rule.
	dim := &s.Dimensions
	switch {
	case dim.Conflict():
		msg := "Diámetro no puede combinarse con ancho o alto."
		add(FieldDiameter, msg)
		add(FieldWidth, msg)
		add(FieldHeight, msg)
	case !dim.BlockSet() && !dim.CylinderSet():
		msg := "Faltan dimensiones: captura largo, ancho y alto, o bien diámetro y largo."
		add(FieldLength, msg)
		add(FieldWidth, msg)
		add(FieldHeight, msg)
		add(FieldDiameter, msg)
	}

	return errs
}

func validateItems(items []LineItem) []FieldError {
	var errs []FieldError
	add := func(row int, message string) {
		errs = append(errs, FieldError{Field: FieldItems, Message: message, Row: row})
	}

	valid := 0
	for i, item := range items {
		rowOK := true
		if _, err := ParsePositiveInt(item.Quantity); err != nil {
			add(i, fmt.Sprintf("Fila %d: cantidad debe ser un entero mayor que 0.", i+1))
			rowOK = false
		}
		if strings.TrimSpace(item.Description) == "" {
			add(i, fmt.Sprintf("Fila %d: descripción obligatoria.", i+1))
			rowOK = false
		}
		if strings.TrimSpace(item.ID) == "" {
			add(i, fmt.Sprintf("Fila %d: producto no seleccionado correctamente (usa las sugerencias).", i+1))
			rowOK = false
		}
		if rowOK {
			valid++
		}
	}
	if valid == 0 {
		add(-1, "Añade al menos un producto del catálogo.")
	}

	return errs
}
