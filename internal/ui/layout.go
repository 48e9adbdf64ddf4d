package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/autointelli/intake/internal/domain"
)

func (a *App) setupLayout() {
	a.TviewApp = tview.NewApplication()
	a.Pages = tview.NewPages()

	if a.Variant.Dashboard {
		a.Pages.AddPage(dashboardPageName, a.buildDashboardPage(), true, true)
	} else {
		a.Pages.AddPage(intakePageName, a.buildIntakePage(), true, true)
	}

	a.TviewApp.SetRoot(a.Pages, true).EnableMouse(true)
	a.TviewApp.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlN:
			a.cycleSection(1)
			return nil
		case tcell.KeyCtrlP:
			a.cycleSection(-1)
			return nil
		}
		return event
	})
}

func (a *App) buildIntakePage() tview.Primitive {
	rootFlex := tview.NewFlex().SetDirection(tview.FlexRow)

	a.FolioLine = tview.NewTextView()
	a.FolioLine.SetBorder(true).SetTitle(a.Variant.Title)
	a.updateFolioLine()
	rootFlex.AddItem(a.FolioLine, 3, 0, false)

	a.Form = tview.NewForm().SetItemPadding(0)
	a.Form.SetBorder(true).SetTitle(" Solicitud ")
	a.buildCommonFields()
	a.buildStandardFields()
	a.Form.AddButton("Enviar Solicitud", a.Submit)
	rootFlex.AddItem(a.Form, 0, 3, true)

	a.ItemsFlex = tview.NewFlex().SetDirection(tview.FlexRow)
	a.ItemsFlex.SetBorder(true).SetTitle(" Productos del catálogo ")
	a.ItemsFlex.AddItem(tview.NewBox(), 0, 1, false) // filler below the rows
	rootFlex.AddItem(a.ItemsFlex, 0, 2, false)

	a.StatusLine = tview.NewTextView().SetDynamicColors(true)
	a.StatusLine.SetBorder(true).SetTitle(" Estado ")
	a.StatusLine.SetWrap(true).SetWordWrap(true)
	rootFlex.AddItem(a.StatusLine, 5, 0, false)

	return rootFlex
}

func (a *App) buildCommonFields() {
	a.requester = a.addTextField(domain.FieldRequester, a.Draft.Common.Requester, func(text string) {
		a.Draft.Common.Requester = text
	})
	a.project = a.addTextField(domain.FieldProject, a.Draft.Common.Project, func(text string) {
		a.Draft.Common.Project = text
	})
	a.date = a.addTextField(domain.FieldDate, a.Draft.Common.Date, func(text string) {
		a.Draft.Common.Date = text
	})
	a.department = a.addTextField(domain.FieldDepartment, a.Draft.Common.Department, func(text string) {
		a.Draft.Common.Department = text
	})

	if a.Variant.FixedProvider != "" {
		a.providerFixed = tview.NewInputField().
			SetLabel(domain.FieldLabel(domain.FieldProvider)).
			SetFieldWidth(FormFieldWidth).
			SetText(a.Variant.FixedProvider)
		a.providerFixed.SetDisabled(true)
		a.Form.AddFormItem(a.providerFixed)
		a.fields[domain.FieldProvider] = a.providerFixed
	} else {
		options := a.providerOptions()
		a.providerDrop = tview.NewDropDown().
			SetLabel(domain.FieldLabel(domain.FieldProvider)).
			SetOptions(options, func(option string, index int) {
				if a.syncing || option == a.Draft.Common.Provider {
					return
				}
				a.Draft.Common.Provider = option
				a.applyMode()
			})
		a.Form.AddFormItem(a.providerDrop)
		a.fields[domain.FieldProvider] = a.providerDrop
	}

	a.notes = tview.NewTextArea().
		SetLabel(domain.FieldLabel(domain.FieldNotes)).
		SetSize(2, FormFieldWidth)
	a.notes.SetChangedFunc(func() {
		a.Draft.Common.Notes = a.notes.GetText()
	})
	a.Form.AddFormItem(a.notes)
	a.fields[domain.FieldNotes] = a.notes
}

func (a *App) buildStandardFields() {
	a.quantity = tview.NewInputField().
		SetLabel(domain.FieldLabel(domain.FieldQuantity)).
		SetFieldWidth(8).
		SetText(a.Draft.Standard.Quantity).
		SetAcceptanceFunc(tview.InputFieldFloat)
	a.quantity.SetChangedFunc(func(text string) {
		a.Draft.Standard.Quantity = text
	})
	a.Form.AddFormItem(a.quantity)
	a.fields[domain.FieldQuantity] = a.quantity

	a.materialDrop = tview.NewDropDown().
		SetLabel(domain.FieldLabel(domain.FieldMaterial))
	a.Form.AddFormItem(a.materialDrop)
	a.fields[domain.FieldMaterial] = a.materialDrop

	a.typeField = tview.NewInputField().
		SetLabel(domain.FieldLabel(domain.FieldMaterialType)).
		SetFieldWidth(12)
	a.typeField.SetDisabled(true)
	a.Form.AddFormItem(a.typeField)
	a.fields[domain.FieldMaterialType] = a.typeField

	a.unitField = newSuggestField(domain.FieldLabel(domain.FieldUnit), a.Ref.Dimensions.Units())
	a.unitField.SetChangedFunc(func(text string) {
		a.Draft.Standard.Unit = text
		a.updateDimensionSuggestions()
	})
	a.unitField.onPicked = func(text string) {
		a.Draft.Standard.Unit = text
		a.updateDimensionSuggestions()
	}
	a.Form.AddFormItem(a.unitField)
	a.fields[domain.FieldUnit] = a.unitField

	a.dimFields = make(map[domain.FieldID]*suggestField, 4)
	for _, field := range []domain.FieldID{
		domain.FieldLength, domain.FieldWidth, domain.FieldHeight, domain.FieldDiameter,
	} {
		field := field
		sf := newSuggestField(domain.FieldLabel(field), nil)
		sf.SetChangedFunc(func(text string) {
			a.onDimensionChanged(field, text)
		})
		a.Form.AddFormItem(sf)
		a.dimFields[field] = sf
		a.fields[field] = sf
	}
}

func (a *App) addTextField(field domain.FieldID, value string, onChanged func(string)) *tview.InputField {
	input := tview.NewInputField().
		SetLabel(domain.FieldLabel(field)).
		SetFieldWidth(FormFieldWidth).
		SetText(value)
	input.SetChangedFunc(func(text string) {
		if !a.syncing {
			onChanged(text)
		}
	})
	a.Form.AddFormItem(input)
	a.fields[field] = input
	return input
}

// providerOptions lists what the provider dropdown offers for this variant.
func (a *App) providerOptions() []string {
	var options []string
	if a.Variant.Standard {
		options = append(options, domain.StandardProviders()...)
	}
	if a.Variant.Catalog {
		options = append(options, domain.CatalogProvider)
	}
	return options
}

func (a *App) updateFolioLine() {
	if a.FolioLine != nil {
		a.FolioLine.SetText("Folio: " + a.Draft.Folio)
	}
}

// updateDimensionSuggestions refreshes the advisory value lists after a unit
// change. Values outside the list stay legal.
func (a *App) updateDimensionSuggestions() {
	suggestions := a.Ref.Dimensions.ForUnit(a.Draft.Standard.Unit)
	for _, sf := range a.dimFields {
		sf.setOptions(suggestions)
	}
}
