package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/autointelli/intake/internal/domain"
)

// suggestField is an InputField with autocomplete over a fixed option list.
// Free text is allowed; the list is advisory. Used for the unit of measure
// and the dimension inputs, whose suggestions come from the dimension table.
type suggestField struct {
	*tview.InputField
	options            []string
	autocompleteActive bool
	onPicked           func(text string)
}

func newSuggestField(label string, options []string) *suggestField {
	sf := &suggestField{
		InputField: tview.NewInputField().SetLabel(label).SetFieldWidth(FormFieldWidth),
		options:    append([]string(nil), options...),
	}
	sf.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyDown, tcell.KeyUp, tcell.KeyPgDn, tcell.KeyPgUp,
			tcell.KeyRune, tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
			sf.autocompleteActive = true
		case tcell.KeyEscape:
			sf.autocompleteActive = false
		}
		return event
	})
	sf.SetAutocompleteFunc(func(currentText string) []string {
		if !sf.autocompleteActive {
			return nil
		}
		query := strings.ToLower(strings.TrimSpace(currentText))
		if query == "" {
			return append([]string(nil), sf.options...)
		}
		filtered := make([]string, 0, len(sf.options))
		for _, option := range sf.options {
			if strings.Contains(strings.ToLower(option), query) {
				filtered = append(filtered, option)
			}
		}
		return filtered
	})
	sf.SetAutocompletedFunc(func(text string, index int, source int) bool {
		if source == tview.AutocompletedNavigate {
			return false
		}
		sf.SetText(text)
		sf.autocompleteActive = false
		if sf.onPicked != nil {
			sf.onPicked(text)
		}
		return true
	})
	return sf
}

// setOptions replaces the suggestion list, keeping the current text.
func (sf *suggestField) setOptions(options []string) {
	sf.options = append(sf.options[:0], options...)
}

// catalogField is an InputField bound to the catalog master list. Suggestions
// are ranked entries; picking one resolves the row to that entry's identifier.
// Typed text only resolves through an exact description match, so the
// identifier can never come from free text.
type catalogField struct {
	*tview.InputField
	master             []domain.CatalogEntry
	suggestions        []domain.CatalogEntry
	autocompleteActive bool

	// onResolved fires on every text change with the entry the current text
	// maps to, or ok=false when it maps to none.
	onResolved func(entry domain.CatalogEntry, ok bool)
}

func newCatalogField(label string, master []domain.CatalogEntry) *catalogField {
	cf := &catalogField{
		InputField: tview.NewInputField().SetLabel(label).SetFieldWidth(FormFieldWidth),
		master:     master,
	}
	cf.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyDown, tcell.KeyUp, tcell.KeyPgDn, tcell.KeyPgUp,
			tcell.KeyRune, tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
			cf.autocompleteActive = true
		case tcell.KeyEscape:
			cf.autocompleteActive = false
		}
		return event
	})
	cf.SetAutocompleteFunc(func(currentText string) []string {
		if !cf.autocompleteActive {
			return nil
		}
		cf.suggestions = domain.Search(cf.master, currentText, domain.MaxSuggestions)
		labels := make([]string, len(cf.suggestions))
		for i, entry := range cf.suggestions {
			labels[i] = entry.Description
		}
		return labels
	})
	cf.SetAutocompletedFunc(func(text string, index int, source int) bool {
		if source == tview.AutocompletedNavigate {
			return false
		}
		cf.autocompleteActive = false
		if index >= 0 && index < len(cf.suggestions) {
			entry := cf.suggestions[index]
			cf.SetText(entry.Description)
			if cf.onResolved != nil {
				cf.onResolved(entry, true)
			}
			return true
		}
		cf.SetText(text)
		cf.resolveText(text)
		return true
	})
	cf.SetChangedFunc(func(text string) {
		cf.resolveText(text)
	})
	return cf
}

func (cf *catalogField) resolveText(text string) {
	if cf.onResolved == nil {
		return
	}
	entry, ok := domain.Resolve(cf.master, text)
	cf.onResolved(entry, ok)
}
