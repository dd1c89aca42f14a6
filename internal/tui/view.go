package tui

import (
	"fmt"
	"strings"
)

// renderView dispatches to the active screen's renderer.
func (a App) renderView() string {
	var body string
	switch a.screen {
	case screenAdd:
		body = a.renderAdd()
	case screenDetail:
		body = a.renderDetail()
	case screenConfirm:
		body = a.renderConfirm()
	default:
		body = a.renderList()
	}
	return a.styles.App.Render(body)
}

func (a App) renderList() string {
	var b strings.Builder

	total := len(a.homeState.Bookmarks)
	title := fmt.Sprintf("hoard (%d bookmarks)", total)
	if a.homeState.IsLoading {
		title += " loading..."
	}
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("\n")

	if a.filtering || a.homeState.SearchQuery != "" {
		b.WriteString(a.filter.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	visible := a.visible()
	if len(visible) == 0 {
		if a.homeState.SearchQuery != "" {
			b.WriteString(a.styles.Empty.Render("no matches"))
		} else {
			b.WriteString(a.styles.Empty.Render("no bookmarks yet, press a to add one"))
		}
		b.WriteString("\n")
	}

	for i, bookmark := range visible {
		style := a.styles.Item
		if i == a.cursor {
			style = a.styles.ItemSelected
		}
		b.WriteString(style.Render(bookmark.Title))
		b.WriteString("\n")
		b.WriteString("  " + a.styles.URL.Render(bookmark.URL))
		b.WriteString("\n")
	}

	b.WriteString(a.renderFooter("j/k: move  enter: open  a: add  d: delete  /: filter  Y: yank  q: quit"))
	return b.String()
}

func (a App) renderAdd() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("add bookmark"))
	b.WriteString("\n\n")

	labels := []string{"Title", "URL", "Notes"}
	for i, input := range a.addInputs {
		b.WriteString(a.styles.Label.Render(labels[i]))
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	b.WriteString(a.renderFooter("tab: next field  enter: confirm  esc: cancel"))
	return b.String()
}

func (a App) renderDetail() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("bookmark"))
	b.WriteString("\n\n")

	state := a.det.state
	switch {
	case state.IsLoading:
		b.WriteString(a.styles.Empty.Render("loading..."))
		b.WriteString("\n")

	case state.Error != "":
		b.WriteString(a.styles.Error.Render(state.Error))
		b.WriteString("\n")

	case state.Bookmark != nil:
		bookmark := state.Bookmark
		b.WriteString(a.styles.Label.Render("Title") + bookmark.Title + "\n")
		b.WriteString(a.styles.Label.Render("URL") + a.styles.URL.Render(bookmark.URL) + "\n")
		if a.editingNotes {
			b.WriteString(a.styles.Label.Render("Notes") + a.notesInput.View() + "\n")
		} else {
			notes := bookmark.Notes
			if notes == "" {
				notes = "-"
			}
			b.WriteString(a.styles.Label.Render("Notes") + a.styles.Notes.Render(notes) + "\n")
		}
		b.WriteString(a.styles.Label.Render("Added") + a.styles.Date.Render(bookmark.CreatedAt.Format("2006-01-02 15:04")) + "\n")
	}

	if a.editingNotes {
		b.WriteString(a.renderFooter("enter: save notes  esc: cancel"))
	} else {
		b.WriteString(a.renderFooter("e: edit notes  d: delete  Y: yank  h/esc: back  q: quit"))
	}
	return b.String()
}

func (a App) renderConfirm() string {
	var b strings.Builder

	state := a.conf.state
	switch {
	case state.IsDeleting:
		b.WriteString("deleting...")
	case state.IsLoading:
		b.WriteString("loading...")
	case state.Bookmark == nil:
		b.WriteString("nothing to delete")
	default:
		b.WriteString(fmt.Sprintf("delete %q?", state.Bookmark.Title))
	}

	dialog := a.styles.Dialog.Render(b.String())
	return dialog + "\n" + a.styles.Help.Render("y: confirm  n/esc: cancel")
}

// renderFooter stacks error, status and hint lines under the body.
func (a App) renderFooter(hints string) string {
	var b strings.Builder
	b.WriteString("\n")
	if a.homeState.Error != "" {
		b.WriteString(a.styles.Error.Render(a.homeState.Error))
		b.WriteString("\n")
	}
	if a.status != "" {
		b.WriteString(a.styles.Status.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render(hints))
	return b.String()
}
