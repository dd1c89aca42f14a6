// Package detail implements the detail controller for a single bookmark.
package detail

import (
	"context"

	"hoard/internal/logger"
	"hoard/internal/model"
	"hoard/internal/reactive"
	"hoard/internal/store"
)

// UiState is the immutable snapshot of the detail screen.
type UiState struct {
	Bookmark  *model.Bookmark
	IsLoading bool
	Error     string
}

// Event is a one-shot navigation event from the detail screen.
type Event interface{ detailEvent() }

// NavigateBack asks the UI to pop back to the list.
type NavigateBack struct{}

// NavigateToDeleteConfirmation asks the UI to open the delete dialog.
type NavigateToDeleteConfirmation struct{ BookmarkID string }

func (NavigateBack) detailEvent()                 {}
func (NavigateToDeleteConfirmation) detailEvent() {}

// Controller drives the detail screen for one bookmark id fixed at
// construction.
type Controller struct {
	repo       store.Repository
	log        logger.Logger
	bookmarkID string
	state      *reactive.State[UiState]
	events     *reactive.Events[Event]
}

// ControllerParams holds the collaborators for a new Controller.
type ControllerParams struct {
	Repo       store.Repository
	Log        logger.Logger
	BookmarkID string
}

// NewController wires a Controller for the given bookmark id.
func NewController(params ControllerParams) *Controller {
	return &Controller{
		repo:       params.Repo,
		log:        params.Log,
		bookmarkID: params.BookmarkID,
		state:      reactive.NewState(UiState{}),
		events:     reactive.NewEvents[Event](),
	}
}

// State exposes the observable snapshot.
func (c *Controller) State() *reactive.State[UiState] {
	return c.state
}

// Events exposes the one-shot navigation event stream.
func (c *Controller) Events() *reactive.Events[Event] {
	return c.events
}

// Load fetches the bookmark. A miss settles with "Bookmark not found"
// rather than an error to the caller.
func (c *Controller) Load() {
	go func() {
		c.state.Update(func(s UiState) UiState {
			s.IsLoading = true
			return s
		})

		bookmark, found, err := c.repo.Get(context.Background(), c.bookmarkID)
		if err != nil {
			c.state.Update(func(s UiState) UiState {
				s.IsLoading = false
				s.Error = err.Error()
				return s
			})
			return
		}

		c.state.Update(func(s UiState) UiState {
			s.IsLoading = false
			if !found {
				s.Bookmark = nil
				s.Error = "Bookmark not found"
				return s
			}
			b := bookmark
			s.Bookmark = &b
			s.Error = ""
			return s
		})
	}()
}

// NavigateBack emits a NavigateBack event. State is untouched.
func (c *Controller) NavigateBack() {
	c.events.Emit(NavigateBack{})
}

// DeleteClick emits a NavigateToDeleteConfirmation event.
func (c *Controller) DeleteClick() {
	c.events.Emit(NavigateToDeleteConfirmation{BookmarkID: c.bookmarkID})
}

// UpdateNotes replaces the bookmark's notes, persists the change and
// refreshes local state from the edited copy without a full reload.
func (c *Controller) UpdateNotes(notes string) {
	go func() {
		current := c.state.Get().Bookmark
		if current == nil {
			return
		}
		updated := *current
		updated.Notes = notes

		if err := c.repo.Update(context.Background(), updated); err != nil {
			c.state.Update(func(s UiState) UiState {
				s.Error = err.Error()
				return s
			})
			return
		}

		c.state.Update(func(s UiState) UiState {
			s.Bookmark = &updated
			s.Error = ""
			return s
		})
	}()
}
