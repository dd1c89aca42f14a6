package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"hoard/internal/deleteconfirm"
	"hoard/internal/detail"
	"hoard/internal/home"
)

// The controllers publish through channels; these messages carry their
// values into the bubbletea update loop. Detail and confirm messages are
// tagged with the generation of the screen they belong to so values from
// an already closed screen are dropped instead of reaching a new one.
type (
	homeStateMsg home.UiState
	homeEventMsg struct{ event home.Event }

	detailStateMsg struct {
		gen   int
		state detail.UiState
	}
	detailEventMsg struct {
		gen   int
		event detail.Event
	}

	confirmStateMsg struct {
		gen   int
		state deleteconfirm.UiState
	}
	confirmEventMsg struct {
		gen   int
		event deleteconfirm.Event
	}

	// statusExpiredMsg clears a transient status line.
	statusExpiredMsg struct{ id int }
)

// waitFor blocks on a subscription channel and converts the next value
// into a message. The update loop re-issues the command after each
// delivery, so the channel is pumped one value per message. A closed
// channel ends the pump.
func waitFor[T any](ch <-chan T, wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		value, ok := <-ch
		if !ok {
			return nil
		}
		return wrap(value)
	}
}

func waitHomeState(ch <-chan home.UiState) tea.Cmd {
	return waitFor(ch, func(s home.UiState) tea.Msg { return homeStateMsg(s) })
}

func waitHomeEvent(ch <-chan home.Event) tea.Cmd {
	return waitFor(ch, func(e home.Event) tea.Msg { return homeEventMsg{event: e} })
}

func waitDetailState(gen int, ch <-chan detail.UiState) tea.Cmd {
	return waitFor(ch, func(s detail.UiState) tea.Msg { return detailStateMsg{gen: gen, state: s} })
}

func waitDetailEvent(gen int, ch <-chan detail.Event) tea.Cmd {
	return waitFor(ch, func(e detail.Event) tea.Msg { return detailEventMsg{gen: gen, event: e} })
}

func waitConfirmState(gen int, ch <-chan deleteconfirm.UiState) tea.Cmd {
	return waitFor(ch, func(s deleteconfirm.UiState) tea.Msg { return confirmStateMsg{gen: gen, state: s} })
}

func waitConfirmEvent(gen int, ch <-chan deleteconfirm.Event) tea.Cmd {
	return waitFor(ch, func(e deleteconfirm.Event) tea.Msg { return confirmEventMsg{gen: gen, event: e} })
}
