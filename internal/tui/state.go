package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"hoard/internal/model"
)

// updateList handles keys on the list screen outside filter mode.
func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	visible := a.visible()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, a.shutdown()

	case key.Matches(msg, a.keys.Down):
		if len(visible) > 0 && a.cursor < len(visible)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(visible) > 0 {
			a.cursor = len(visible) - 1
		}

	case key.Matches(msg, a.keys.Open):
		if a.cursor < len(visible) {
			a.home.BookmarkClicked(visible[a.cursor].ID)
		}

	case key.Matches(msg, a.keys.Delete):
		if a.cursor < len(visible) {
			a.home.DeleteBookmarkClicked(visible[a.cursor].ID)
		}

	case key.Matches(msg, a.keys.Add):
		return a.openAddForm()

	case key.Matches(msg, a.keys.ClearAll):
		a.home.ClearAll()
		return a, a.setStatus("cleared all bookmarks")

	case key.Matches(msg, a.keys.Filter):
		a.filtering = true
		a.filter.SetValue(a.homeState.SearchQuery)
		a.filter.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.YankURL):
		if a.cursor < len(visible) {
			return a, a.yankURL(visible[a.cursor].URL)
		}
	}

	return a, nil
}

// updateFilter handles keys while the filter input has focus. Every
// keystroke is echoed to the controller, which debounces the recompute.
func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.filtering = false
		a.filter.Blur()
		a.filter.SetValue("")
		a.home.SearchQueryChanged("")
		return a, nil

	case tea.KeyEnter:
		a.filtering = false
		a.filter.Blur()
		return a, nil

	case tea.KeyCtrlC:
		return a, a.shutdown()
	}

	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	a.home.SearchQueryChanged(a.filter.Value())
	return a, cmd
}

// openAddForm resets and focuses the add inputs.
func (a App) openAddForm() (tea.Model, tea.Cmd) {
	for i := range a.addInputs {
		a.addInputs[i].SetValue("")
		a.addInputs[i].Blur()
	}
	a.addFocus = 0
	a.addInputs[0].Focus()
	a.screen = screenAdd
	return a, textinput.Blink
}

// updateAdd handles keys on the add form.
func (a App) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.screen = screenList
		return a, nil

	case tea.KeyCtrlC:
		return a, a.shutdown()

	case tea.KeyTab, tea.KeyDown:
		return a.focusAddInput(a.addFocus + 1)

	case tea.KeyShiftTab, tea.KeyUp:
		return a.focusAddInput(a.addFocus - 1)

	case tea.KeyEnter:
		if a.addFocus < len(a.addInputs)-1 {
			return a.focusAddInput(a.addFocus + 1)
		}
		return a.submitAdd()
	}

	var cmd tea.Cmd
	a.addInputs[a.addFocus], cmd = a.addInputs[a.addFocus].Update(msg)
	return a, cmd
}

func (a App) focusAddInput(index int) (tea.Model, tea.Cmd) {
	if index < 0 || index >= len(a.addInputs) {
		return a, nil
	}
	a.addInputs[a.addFocus].Blur()
	a.addFocus = index
	a.addInputs[a.addFocus].Focus()
	return a, textinput.Blink
}

func (a App) submitAdd() (tea.Model, tea.Cmd) {
	title := a.addInputs[0].Value()
	url := a.addInputs[1].Value()
	if title == "" && url == "" {
		// Nothing to add
		a.screen = screenList
		return a, nil
	}

	a.home.Add(model.NewBookmark(model.NewBookmarkParams{
		Title: title,
		URL:   url,
		Notes: a.addInputs[2].Value(),
	}))
	a.screen = screenList
	return a, a.setStatus("added " + title)
}

// updateDetail handles keys on the detail screen outside notes editing.
func (a App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, a.shutdown()

	case key.Matches(msg, a.keys.Back):
		a.det.controller.NavigateBack()

	case key.Matches(msg, a.keys.Delete):
		a.det.controller.DeleteClick()

	case key.Matches(msg, a.keys.EditNotes):
		if a.det.state.Bookmark != nil {
			a.editingNotes = true
			a.notesInput.SetValue(a.det.state.Bookmark.Notes)
			a.notesInput.Focus()
			return a, textinput.Blink
		}

	case key.Matches(msg, a.keys.YankURL):
		if a.det.state.Bookmark != nil {
			return a, a.yankURL(a.det.state.Bookmark.URL)
		}
	}

	return a, nil
}

// updateNotes handles keys while the notes input has focus.
func (a App) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.editingNotes = false
		a.notesInput.Blur()
		return a, nil

	case tea.KeyEnter:
		a.det.controller.UpdateNotes(a.notesInput.Value())
		a.editingNotes = false
		a.notesInput.Blur()
		return a, a.setStatus("notes saved")

	case tea.KeyCtrlC:
		return a, a.shutdown()
	}

	var cmd tea.Cmd
	a.notesInput, cmd = a.notesInput.Update(msg)
	return a, cmd
}

// updateConfirm handles keys on the delete confirmation dialog.
func (a App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		a.conf.controller.ConfirmDelete()

	case key.Matches(msg, a.keys.Cancel):
		a.conf.controller.Cancel()

	case key.Matches(msg, a.keys.Quit):
		return a, a.shutdown()
	}

	return a, nil
}

// yankURL copies the URL to the system clipboard.
func (a *App) yankURL(url string) tea.Cmd {
	if err := clipboard.WriteAll(url); err != nil {
		return a.setStatus("clipboard unavailable")
	}
	return a.setStatus("yanked " + url)
}
