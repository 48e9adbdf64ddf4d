package ui

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/autointelli/intake/internal/client"
	"github.com/autointelli/intake/internal/domain"
)

// dashboardRow is one request on the purchasing dashboard with its inline
// status editor.
type dashboardRow struct {
	sol  *client.Solicitud
	info *tview.TextView
	form *tview.Form
	drop *tview.DropDown
}

func (r *dashboardRow) refreshInfo() {
	r.info.SetText(fmt.Sprintf("%s  |  %s  |  %s  |  %s  |  [yellow]%s[-]",
		r.sol.Folio, r.sol.Requester, r.sol.Project, r.sol.Date, r.sol.Status))
}

func (a *App) buildDashboardPage() tview.Primitive {
	rootFlex := tview.NewFlex().SetDirection(tview.FlexRow)

	title := tview.NewTextView().SetText("Solicitudes de compra")
	title.SetBorder(true).SetTitle(a.Variant.Title)
	rootFlex.AddItem(title, 3, 0, false)

	middleFlex := tview.NewFlex().SetDirection(tview.FlexColumn)
	rootFlex.AddItem(middleFlex, 0, 1, false)

	a.DashboardList = tview.NewFlex().SetDirection(tview.FlexRow)
	a.DashboardList.SetBorder(true).SetTitle(" Solicitudes ")
	middleFlex.AddItem(a.DashboardList, 0, 3, true)

	a.ChartView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	a.ChartView.SetBorder(true).SetTitle(" Solicitudes por estatus ")
	middleFlex.AddItem(a.ChartView, 0, 2, false)

	a.StatusLine = tview.NewTextView().SetDynamicColors(true)
	a.StatusLine.SetBorder(true).SetTitle(" Estado ")
	a.StatusLine.SetWrap(true).SetWordWrap(true)
	rootFlex.AddItem(a.StatusLine, 4, 0, false)

	a.dashboardRows = a.dashboardRows[:0]
	for i := range a.Solicitudes {
		a.addDashboardRow(&a.Solicitudes[i])
	}
	a.DashboardList.AddItem(tview.NewBox(), 0, 1, false)
	a.renderChart()

	return rootFlex
}

func (a *App) addDashboardRow(sol *client.Solicitud) {
	row := &dashboardRow{sol: sol}

	row.info = tview.NewTextView().SetDynamicColors(true)
	row.refreshInfo()

	row.drop = tview.NewDropDown().
		SetLabel("Cambiar Estatus ").
		SetOptions(domain.StatusOptions(), nil)
	row.drop.SetSelectedFunc(func(option string, index int) {
		a.changeStatus(row, option)
	})
	row.form = tview.NewForm().SetHorizontal(true).SetItemPadding(1)
	row.form.AddFormItem(row.drop)

	rowFlex := tview.NewFlex().SetDirection(tview.FlexColumn)
	rowFlex.AddItem(row.info, 0, 2, false)
	rowFlex.AddItem(row.form, 0, 1, false)

	a.dashboardRows = append(a.dashboardRows, row)
	a.DashboardList.AddItem(rowFlex, 2, 0, false)
}

// changeStatus commits one status transition: the row's control is disabled
// while the request runs, the displayed status only moves on success, and
// feedback clears itself after a bounded delay.
func (a *App) changeStatus(row *dashboardRow, newStatus string) {
	if a.syncing || !domain.ValidStatus(newStatus) || newStatus == row.sol.Status {
		return
	}
	row.drop.SetDisabled(true)
	a.setStatus("Actualizando estatus...", false)

	pageID := row.sol.PageID
	go func() {
		msg, err := a.Backend.UpdateStatus(context.Background(), pageID, newStatus)
		a.TviewApp.QueueUpdateDraw(func() {
			a.finishStatusChange(row, newStatus, msg, err)
		})
	}()
}

func (a *App) finishStatusChange(row *dashboardRow, newStatus, msg string, err error) {
	row.drop.SetDisabled(false)
	a.syncing = true
	row.drop.SetCurrentOption(-1)
	a.syncing = false

	if err != nil {
		// The displayed status never moved; surfacing the message is the
		// whole rollback.
		a.Logger.Warn("status change rolled back",
			zap.String("page_id", row.sol.PageID), zap.Error(err))
		a.setStatus(err.Error(), true)
		return
	}
	row.sol.Status = newStatus
	row.refreshInfo()
	a.renderChart()
	a.setStatus(msg, true)
}

// renderChart redraws the requests-per-status bar chart.
func (a *App) renderChart() {
	if a.ChartView == nil {
		return
	}
	counts := make(map[string]int)
	for _, sol := range a.Solicitudes {
		counts[sol.Status]++
	}
	bars := make([]pterm.Bar, 0, len(domain.StatusOptions()))
	for _, status := range domain.StatusOptions() {
		bars = append(bars, pterm.Bar{Label: status, Value: counts[status]})
	}
	a.ChartView.Clear()
	_ = pterm.DefaultBarChart.
		WithBars(bars).
		WithHorizontal().
		WithShowValue().
		WithWriter(tview.ANSIWriter(a.ChartView)).
		Render()
}
