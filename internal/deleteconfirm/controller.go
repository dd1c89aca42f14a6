// Package deleteconfirm implements the controller behind the delete
// confirmation dialog: it performs the one destructive operation in the
// application.
package deleteconfirm

import (
	"context"

	"hoard/internal/logger"
	"hoard/internal/model"
	"hoard/internal/reactive"
	"hoard/internal/store"
)

// UiState is the immutable snapshot of the confirmation dialog. IsDeleting
// gates the destructive call from running twice concurrently.
type UiState struct {
	Bookmark   *model.Bookmark
	IsLoading  bool
	IsDeleting bool
}

// Event is a one-shot event from the confirmation dialog.
type Event interface{ deleteConfirmEvent() }

// Dismissed means the user cancelled; nothing was deleted.
type Dismissed struct{}

// DeleteConfirmed means the bookmark is gone from the store.
type DeleteConfirmed struct{}

func (Dismissed) deleteConfirmEvent()       {}
func (DeleteConfirmed) deleteConfirmEvent() {}

// Controller drives the confirmation dialog for one bookmark id fixed at
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

// Events exposes the one-shot event stream.
func (c *Controller) Events() *reactive.Events[Event] {
	return c.events
}

// Load fetches the target bookmark. Lookup failures are swallowed: the
// dialog simply shows no record. A transient confirmation surface does not
// need an error field.
func (c *Controller) Load() {
	go func() {
		c.state.Update(func(s UiState) UiState {
			s.IsLoading = true
			return s
		})

		bookmark, found, err := c.repo.Get(context.Background(), c.bookmarkID)

		c.state.Update(func(s UiState) UiState {
			s.IsLoading = false
			if err != nil || !found {
				s.Bookmark = nil
				return s
			}
			b := bookmark
			s.Bookmark = &b
			return s
		})
	}()
}

// ConfirmDelete performs the delete unless one is already in flight. On
// success it emits DeleteConfirmed; on failure it resets the busy flag and
// leaves the dialog open for a retry.
func (c *Controller) ConfirmDelete() {
	proceed := false
	c.state.Update(func(s UiState) UiState {
		if s.IsDeleting {
			return s
		}
		proceed = true
		s.IsDeleting = true
		return s
	})
	if !proceed {
		return
	}

	go func() {
		if err := c.repo.Delete(context.Background(), c.bookmarkID); err != nil {
			c.log.Warn("delete failed", logger.String("id", c.bookmarkID), logger.Error(err))
			c.state.Update(func(s UiState) UiState {
				s.IsDeleting = false
				return s
			})
			return
		}
		c.events.Emit(DeleteConfirmed{})
	}()
}

// Cancel emits Dismissed without touching the store.
func (c *Controller) Cancel() {
	c.events.Emit(Dismissed{})
}
