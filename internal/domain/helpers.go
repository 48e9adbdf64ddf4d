package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePositiveInt parses a line-item quantity: an integer >= 1.
func ParsePositiveInt(s string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("cantidad %q no es un número entero", s)
	}
	if value < 1 {
		return 0, fmt.Errorf("cantidad debe ser mayor que 0, se recibió %d", value)
	}
	return value, nil
}

// ParsePositiveNumber parses a requested quantity: any number > 0.
func ParsePositiveNumber(s string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("cantidad %q no es un número", s)
	}
	if value <= 0 {
		return 0, fmt.Errorf("cantidad debe ser mayor que 0, se recibió %v", value)
	}
	return value, nil
}

// FieldLabel returns the user-facing label for a field.
func FieldLabel(field FieldID) string {
	switch field {
	case FieldRequester:
		return "Nombre del solicitante"
	case FieldProject:
		return "Proyecto"
	case FieldDate:
		return "Fecha de solicitud"
	case FieldDepartment:
		return "Departamento/Área"
	case FieldProvider:
		return "Proveedor"
	case FieldNotes:
		return "Especificaciones adicionales"
	case FieldFolio:
		return "Folio"
	case FieldQuantity:
		return "Cantidad solicitada"
	case FieldMaterial:
		return "Nombre del material"
	case FieldMaterialType:
		return "Tipo de material"
	case FieldUnit:
		return "Unidad de medida"
	case FieldLength:
		return "Largo"
	case FieldWidth:
		return "Ancho"
	case FieldHeight:
		return "Alto"
	case FieldDiameter:
		return "Diámetro"
	case FieldItems:
		return "Productos"
	}
	return string(field)
}
