package ui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/autointelli/intake/internal/client"
	"github.com/autointelli/intake/internal/config"
	"github.com/autointelli/intake/internal/domain"
)

const (
	intakePageName    = "*intake*"
	dashboardPageName = "*dashboard*"

	FormFieldWidth = 42

	// statusClearDelay bounds how long transient feedback stays on screen.
	statusClearDelay = 7 * time.Second
)

// Submitter is the backend surface the UI needs. *client.Client satisfies it;
// tests swap in stubs.
type Submitter interface {
	Submit(ctx context.Context, d *domain.Draft) (client.Outcome, error)
	UpdateStatus(ctx context.Context, pageID, status string) (string, error)
}

// App holds all UI state for the intake terminal application.
type App struct {
	Draft   *domain.Draft
	Ref     client.Reference
	Variant config.Variant

	Backend Submitter
	Logger  *zap.Logger

	TviewApp *tview.Application
	Pages    *tview.Pages

	// Intake page widgets.
	Form       *tview.Form
	ItemsFlex  *tview.Flex
	FolioLine  *tview.TextView
	StatusLine *tview.TextView

	// Dashboard page widgets.
	Solicitudes   []client.Solicitud
	DashboardList *tview.Flex
	ChartView     *tview.TextView

	// Widgets addressed by validation output.
	fields map[domain.FieldID]tview.FormItem

	// Individual intake widgets, kept for cascades and resets.
	requester     *tview.InputField
	project       *tview.InputField
	date          *tview.InputField
	department    *tview.InputField
	notes         *tview.TextArea
	providerDrop  *tview.DropDown
	providerFixed *tview.InputField
	quantity      *tview.InputField
	materialDrop  *tview.DropDown
	typeField     *tview.InputField
	unitField     *suggestField
	dimFields     map[domain.FieldID]*suggestField

	rows          []*itemRow
	dashboardRows []*dashboardRow

	sending     bool
	syncing     bool
	statusTimer *time.Timer
	statusGen   int

	// Section focus ring, cycled with Ctrl+N / Ctrl+P.
	sections []tview.Primitive
	section  int
}

// New builds the application for one variant. Reference data and dashboard
// rows are loaded by the caller; a degraded Reference is accepted and only
// disables autocomplete.
func New(variant config.Variant, backend Submitter, ref client.Reference, solicitudes []client.Solicitud, logger *zap.Logger) *App {
	a := &App{
		Draft:       domain.NewDraft(),
		Ref:         ref,
		Variant:     variant,
		Backend:     backend,
		Logger:      logger,
		Solicitudes: solicitudes,
		fields:      make(map[domain.FieldID]tview.FormItem),
	}
	a.Draft.Common.Date = time.Now().Format("2006-01-02")
	if variant.FixedProvider != "" {
		a.Draft.Common.Provider = variant.FixedProvider
	}
	a.setupLayout()
	a.applyMode()
	return a
}

// Run starts the tview application loop.
func (a *App) Run() error {
	return a.TviewApp.Run()
}

// Stop stops the application.
func (a *App) Stop() {
	if a.TviewApp != nil {
		a.TviewApp.Stop()
	}
}

// setStatus replaces the status line text. transient feedback is cleared
// again after a bounded delay; terminal outcomes stay until the next action.
func (a *App) setStatus(text string, transient bool) {
	a.statusGen++
	if a.statusTimer != nil {
		a.statusTimer.Stop()
		a.statusTimer = nil
	}
	a.StatusLine.SetText(text)
	if !transient || text == "" {
		return
	}
	gen := a.statusGen
	a.statusTimer = time.AfterFunc(statusClearDelay, func() {
		a.TviewApp.QueueUpdateDraw(func() {
			a.clearStatusIfStale(gen)
		})
	})
}

// clearStatusIfStale clears the status line only when the message the timer
// was armed for is still showing. Stop alone cannot guarantee that: a timer
// that fired just before a new message lands has its clear already queued.
func (a *App) clearStatusIfStale(gen int) {
	if a.statusGen == gen {
		a.StatusLine.SetText("")
	}
}

// markErrors paints every failed field's label and focuses the first one.
func (a *App) markErrors(errs []domain.FieldError) {
	a.clearErrorMarks()
	focused := false
	for _, e := range errs {
		if e.Field == domain.FieldItems {
			if e.Row >= 0 && e.Row < len(a.rows) {
				a.rows[e.Row].markError()
				if !focused {
					a.TviewApp.SetFocus(a.rows[e.Row].form)
					focused = true
				}
			}
			continue
		}
		item, ok := a.fields[e.Field]
		if !ok {
			continue
		}
		setItemLabelColor(item, tcell.ColorRed)
		if !focused {
			a.TviewApp.SetFocus(item.(tview.Primitive))
			focused = true
		}
	}
}

// clearErrorMarks restores every field label to the default color.
func (a *App) clearErrorMarks() {
	for _, item := range a.fields {
		setItemLabelColor(item, tview.Styles.SecondaryTextColor)
	}
	for _, row := range a.rows {
		row.clearError()
	}
}

func setItemLabelColor(item tview.FormItem, color tcell.Color) {
	switch w := item.(type) {
	case *tview.InputField:
		w.SetLabelColor(color)
	case *tview.DropDown:
		w.SetLabelColor(color)
	case *tview.TextArea:
		w.SetLabelStyle(w.GetLabelStyle().Foreground(color))
	case *suggestField:
		w.SetLabelColor(color)
	}
}

// cycleSection moves keyboard focus between the form, the line-item rows and
// the dashboard, since tview does not walk focus across sibling primitives.
func (a *App) cycleSection(delta int) {
	a.rebuildSections()
	if len(a.sections) == 0 {
		return
	}
	a.section = (a.section + delta + len(a.sections)) % len(a.sections)
	a.TviewApp.SetFocus(a.sections[a.section])
}

func (a *App) rebuildSections() {
	a.sections = a.sections[:0]
	if a.Variant.Dashboard {
		for _, row := range a.dashboardRows {
			a.sections = append(a.sections, row.form)
		}
		if a.section >= len(a.sections) {
			a.section = 0
		}
		return
	}
	a.sections = append(a.sections, a.Form)
	if a.Draft.Mode == domain.ModeCatalog {
		for _, row := range a.rows {
			a.sections = append(a.sections, row.form)
		}
	}
	if a.section >= len(a.sections) {
		a.section = 0
	}
}
