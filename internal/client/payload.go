package client

import (
	"fmt"
	"strings"

	"github.com/autointelli/intake/internal/domain"
)

// linePayload is one catalog row on the wire.
type linePayload struct {
	Quantity    int    `json:"quantity"`
	ID          string `json:"id"`
	Description string `json:"description"`
}

// BuildPayload serializes a draft into the JSON body the backend expects.
// Keys are the backend's field names, which the domain field IDs double as.
// Only the fields of the active mode are sent; a locked or empty dimension
// slot goes out as the explicit sentinel, never omitted. The draft is assumed
// to have passed validation, so a quantity that fails to parse is an error.
func BuildPayload(d *domain.Draft) (map[string]any, error) {
	body := map[string]any{
		string(domain.FieldRequester):  d.Common.Requester,
		string(domain.FieldProject):    d.Common.Project,
		string(domain.FieldDate):       d.Common.Date,
		string(domain.FieldDepartment): d.Common.Department,
		string(domain.FieldProvider):   d.Common.Provider,
		string(domain.FieldNotes):      d.Common.Notes,
		string(domain.FieldFolio):      d.Folio,
	}

	switch d.Mode {
	case domain.ModeStandard:
		qty, err := domain.ParsePositiveNumber(d.Standard.Quantity)
		if err != nil {
			return nil, fmt.Errorf("serialize standard quantity: %w", err)
		}
		body[string(domain.FieldQuantity)] = qty
		body[string(domain.FieldMaterial)] = d.Standard.Material
		body[string(domain.FieldMaterialType)] = d.Standard.MaterialType
		body[string(domain.FieldUnit)] = d.Standard.Unit

		dims := &d.Standard.Dimensions
		for _, field := range []domain.FieldID{
			domain.FieldLength, domain.FieldWidth, domain.FieldHeight, domain.FieldDiameter,
		} {
			body[string(field)] = dimensionValue(dims.Slot(field))
		}

	case domain.ModeCatalog:
		items := make([]linePayload, 0, len(d.Items))
		for _, item := range d.Items {
			if !item.Complete() {
				continue
			}
			qty, err := domain.ParsePositiveInt(item.Quantity)
			if err != nil {
				return nil, fmt.Errorf("serialize line item: %w", err)
			}
			items = append(items, linePayload{
				Quantity:    qty,
				ID:          strings.TrimSpace(item.ID),
				Description: strings.TrimSpace(item.Description),
			})
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("serialize draft: no complete line items")
		}
		body[string(domain.FieldItems)] = items
	}

	return body, nil
}

func dimensionValue(slot *domain.DimensionSlot) string {
	if slot.Real() {
		return strings.TrimSpace(slot.Value)
	}
	return domain.Sentinel
}
