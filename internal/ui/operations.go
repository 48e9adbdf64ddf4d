package ui

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/autointelli/intake/internal/client"
	"github.com/autointelli/intake/internal/domain"
)

// applyMode re-derives the whole form state from the selected provider:
// which entry group is active, which values survive, whether the item table
// is seeded. Safe to call repeatedly.
func (a *App) applyMode() {
	a.clearErrorMarks()
	a.setStatus(a.baselineStatus(), false)

	provider := strings.TrimSpace(a.Draft.Common.Provider)
	switch {
	case provider == domain.CatalogProvider:
		a.enterCatalogMode()
	case provider != "":
		a.enterStandardMode()
	default:
		// No provider yet: both groups stay inert until one is picked.
		a.Draft.Mode = domain.ModeStandard
		a.setStandardEnabled(false)
		a.clearItemRows()
	}
	a.rebuildSections()
}

// baselineStatus is what the status line shows when nothing is in flight.
// With incomplete reference data the log file is invisible behind the UI, so
// the degraded state gets a standing on-screen warning instead.
func (a *App) baselineStatus() string {
	if !a.Variant.Dashboard && a.Ref.Degraded() {
		return "[yellow]Advertencia: no se pudieron cargar todos los datos de referencia. Las sugerencias del catálogo o de dimensiones pueden no estar disponibles.[-]"
	}
	return ""
}

func (a *App) enterCatalogMode() {
	if a.Draft.Mode != domain.ModeCatalog {
		a.Draft.Mode = domain.ModeCatalog
		// The standard group is now disabled; its values do not survive.
		a.Draft.Standard = domain.StandardFields{Quantity: "1"}
		a.refreshStandardWidgets()
	}
	a.setStandardEnabled(false)
	if len(a.rows) == 0 && len(a.Ref.Master) > 0 {
		a.addItemRow()
	}
}

func (a *App) enterStandardMode() {
	if a.Draft.Mode != domain.ModeStandard {
		a.Draft.Mode = domain.ModeStandard
		a.clearItemRows()
	}
	a.setStandardEnabled(true)
	a.applyMaterialCascade()
	a.refreshDimensions()
}

// applyMaterialCascade repopulates the material dropdown for the current
// provider and re-derives the material type.
func (a *App) applyMaterialCascade() {
	if a.materialDrop == nil {
		return
	}
	materials := domain.MaterialsForProvider(a.Draft.Common.Provider)

	a.syncing = true
	a.materialDrop.SetOptions(materials, func(option string, index int) {
		if a.syncing {
			return
		}
		a.Draft.Standard.Material = option
		a.deriveMaterialType()
	})
	a.materialDrop.SetDisabled(materials == nil)
	a.syncing = false

	// A material from another provider's list does not survive the switch.
	keep := -1
	for i, m := range materials {
		if m == a.Draft.Standard.Material {
			keep = i
		}
	}
	if keep >= 0 {
		a.syncing = true
		a.materialDrop.SetCurrentOption(keep)
		a.syncing = false
	} else {
		a.Draft.Standard.Material = ""
		a.syncing = true
		a.materialDrop.SetCurrentOption(-1)
		a.syncing = false
	}
	a.deriveMaterialType()
}

// deriveMaterialType fills the read-only type field from the material.
func (a *App) deriveMaterialType() {
	t, ok := domain.TypeForMaterial(a.Draft.Standard.Material)
	if !ok {
		t = ""
	}
	a.Draft.Standard.MaterialType = t
	if a.typeField != nil {
		a.typeField.SetText(t)
	}
}

// onDimensionChanged routes a dimension edit through the exclusivity rules
// and pushes the resulting state back into the widgets.
func (a *App) onDimensionChanged(field domain.FieldID, text string) {
	if a.syncing {
		return
	}
	slot := a.Draft.Standard.Dimensions.Slot(field)
	if slot == nil || slot.Locked {
		return
	}
	slot.Value = text
	a.Draft.Standard.Dimensions.Reconcile(field)
	a.refreshDimensions()
}

// refreshDimensions writes slot values and locked state into the widgets
// without re-triggering the change handlers.
func (a *App) refreshDimensions() {
	if a.dimFields == nil {
		return
	}
	a.syncing = true
	defer func() { a.syncing = false }()
	standard := a.Draft.Mode == domain.ModeStandard
	for field, sf := range a.dimFields {
		slot := a.Draft.Standard.Dimensions.Slot(field)
		if sf.GetText() != slot.Value {
			sf.SetText(slot.Value)
		}
		sf.SetDisabled(!standard || slot.Locked)
	}
}

// refreshStandardWidgets pushes the draft's standard values into the widgets.
func (a *App) refreshStandardWidgets() {
	a.syncing = true
	if a.quantity != nil {
		a.quantity.SetText(a.Draft.Standard.Quantity)
	}
	if a.unitField != nil {
		a.unitField.SetText(a.Draft.Standard.Unit)
	}
	if a.materialDrop != nil && a.Draft.Standard.Material == "" {
		a.materialDrop.SetCurrentOption(-1)
	}
	a.syncing = false
	a.deriveMaterialType()
	a.refreshDimensions()
	a.updateDimensionSuggestions()
}

// setStandardEnabled toggles the dimensioned-material group and the item
// table visibility together: exactly one of them accepts input.
func (a *App) setStandardEnabled(enabled bool) {
	if a.quantity == nil {
		return
	}
	a.quantity.SetDisabled(!enabled)
	a.materialDrop.SetDisabled(!enabled || domain.MaterialsForProvider(a.Draft.Common.Provider) == nil)
	a.unitField.SetDisabled(!enabled)
	a.refreshDimensions()
}

// Submit runs the validator and, when it passes, posts the draft. At most
// one submission is in flight per form.
func (a *App) Submit() {
	if a.sending {
		return
	}
	a.clearErrorMarks()

	errs := domain.Validate(a.Draft)
	if len(errs) > 0 {
		a.markErrors(errs)
		a.setStatus("[red]Por favor, corrige los errores:\n"+strings.Join(domain.Messages(errs), "\n")+"[-]", false)
		return
	}

	a.sending = true
	a.setSubmitEnabled(false)
	a.setStatus("Enviando solicitud...", false)
	a.Logger.Info("submitting draft",
		zap.String("folio", a.Draft.Folio),
		zap.String("mode", a.Draft.Mode.String()))

	draft := a.Draft
	go func() {
		outcome, err := a.Backend.Submit(context.Background(), draft)
		a.TviewApp.QueueUpdateDraw(func() {
			a.finishSubmit(outcome, err)
		})
	}()
}

func (a *App) finishSubmit(outcome client.Outcome, err error) {
	a.sending = false
	a.setSubmitEnabled(true)

	if err != nil {
		a.setStatus("[red]Error de red o del servidor.[-]", false)
		return
	}

	message := outcome.Message
	if outcome.ResultURL != "" {
		message += "\nVer registro: " + outcome.ResultURL
	}
	if outcome.Terminal() {
		// Full or partial success: start over with a fresh folio. A logical
		// error keeps everything the user typed.
		a.resetForm()
	}
	a.setStatus(outcomeColorTag(outcome.Kind)+message+"[-]", false)
}

// outcomeColorTag maps an outcome to its status line color: a partial
// success must read as neither a full success nor an error.
func outcomeColorTag(kind client.OutcomeKind) string {
	switch kind {
	case client.OutcomeSuccess:
		return "[green]"
	case client.OutcomeWarning:
		return "[yellow]"
	}
	return "[red]"
}

// resetForm returns to a clean baseline: fresh draft, fresh folio, today's
// date, fixed provider restored, table re-seeded via the mode switch.
func (a *App) resetForm() {
	provider := a.Variant.FixedProvider
	a.Draft = domain.NewDraft()
	a.Draft.Common.Date = time.Now().Format("2006-01-02")
	a.Draft.Common.Provider = provider
	a.clearItemRows()

	a.syncing = true
	a.requester.SetText("")
	a.project.SetText("")
	a.date.SetText(a.Draft.Common.Date)
	a.department.SetText("")
	a.notes.SetText("", false)
	if a.providerDrop != nil {
		a.providerDrop.SetCurrentOption(-1)
	}
	a.syncing = false

	a.refreshStandardWidgets()
	a.updateFolioLine()
	a.applyMode()
}

func (a *App) setSubmitEnabled(enabled bool) {
	if a.Form == nil || a.Form.GetButtonCount() == 0 {
		return
	}
	a.Form.GetButton(0).SetDisabled(!enabled)
}
