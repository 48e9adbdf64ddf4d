package ui

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/autointelli/intake/internal/domain"
)

// itemRow is one line of the catalog item table: quantity, a catalog-bound
// description field and the read-only resolved identifier, each backed by the
// draft entry at the same index.
type itemRow struct {
	form *tview.Form
	qty  *tview.InputField
	desc *catalogField
	id   *tview.InputField
}

// addItemRow appends a fresh row to the table and the draft.
func (a *App) addItemRow() *itemRow {
	a.Draft.Items = append(a.Draft.Items, domain.LineItem{Quantity: "1"})

	row := &itemRow{
		qty: tview.NewInputField().
			SetLabel("Cantidad").
			SetFieldWidth(6).
			SetText("1").
			SetAcceptanceFunc(tview.InputFieldInteger),
		desc: newCatalogField("Descripción", a.Ref.Master),
		id: tview.NewInputField().
			SetLabel("ID").
			SetFieldWidth(12),
	}
	row.id.SetDisabled(true)

	row.qty.SetChangedFunc(func(text string) {
		if item := a.itemFor(row); item != nil {
			item.Quantity = text
		}
	})
	row.desc.SetChangedFunc(func(text string) {
		if item := a.itemFor(row); item != nil {
			item.Description = text
		}
		row.desc.resolveText(text)
	})
	row.desc.onResolved = func(entry domain.CatalogEntry, ok bool) {
		item := a.itemFor(row)
		if item == nil {
			return
		}
		if ok {
			item.ID = entry.ID
			item.Description = entry.Description
			row.id.SetText(entry.ID)
			return
		}
		item.ID = ""
		row.id.SetText("")
	}

	row.form = tview.NewForm().SetHorizontal(true).SetItemPadding(1)
	row.form.AddFormItem(row.qty)
	row.form.AddFormItem(row.desc)
	row.form.AddFormItem(row.id)
	row.form.AddButton("Quitar", func() { a.removeItemRow(row) })
	row.form.SetBorder(true)

	a.rows = append(a.rows, row)
	a.ItemsFlex.AddItem(row.form, 5, 0, false)
	a.renumberRows()
	return row
}

// removeItemRow deletes a row from the table and the draft. Emptying the
// table while catalog entry is active seeds a fresh row so there is always
// something to type into.
func (a *App) removeItemRow(row *itemRow) {
	i := slices.Index(a.rows, row)
	if i < 0 {
		return
	}
	a.rows = slices.Delete(a.rows, i, i+1)
	if i < len(a.Draft.Items) {
		a.Draft.Items = slices.Delete(a.Draft.Items, i, i+1)
	}
	a.ItemsFlex.RemoveItem(row.form)
	a.renumberRows()

	if len(a.rows) == 0 && a.Draft.Mode == domain.ModeCatalog {
		a.addItemRow()
	}
}

// clearItemRows drops every row without re-seeding.
func (a *App) clearItemRows() {
	for _, row := range a.rows {
		a.ItemsFlex.RemoveItem(row.form)
	}
	a.rows = a.rows[:0]
	a.Draft.Items = nil
}

func (a *App) renumberRows() {
	for i, row := range a.rows {
		row.form.SetTitle(fmt.Sprintf(" Fila %d ", i+1))
	}
}

// itemFor returns the draft entry backing a row, nil once the row is gone.
func (a *App) itemFor(row *itemRow) *domain.LineItem {
	i := slices.Index(a.rows, row)
	if i < 0 || i >= len(a.Draft.Items) {
		return nil
	}
	return &a.Draft.Items[i]
}

func (r *itemRow) markError() {
	r.form.SetBorderColor(tcell.ColorRed)
}

func (r *itemRow) clearError() {
	r.form.SetBorderColor(tview.Styles.BorderColor)
}
