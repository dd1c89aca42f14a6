// Package home implements the list controller: it owns the home screen's
// state snapshot, interprets list intents, drains the content intake queue
// and emits one-shot navigation events.
package home

import (
	"context"
	"strconv"
	"sync"
	"time"

	"hoard/internal/intake"
	"hoard/internal/logger"
	"hoard/internal/model"
	"hoard/internal/reactive"
	"hoard/internal/search"
	"hoard/internal/store"
)

// DefaultSearchDebounce is the quiet period before a query change
// recomputes the filtered list.
const DefaultSearchDebounce = 300 * time.Millisecond

// UiState is the immutable snapshot of the home screen.
type UiState struct {
	Bookmarks   []model.Bookmark
	IsLoading   bool
	Error       string
	SearchQuery string
	Filtered    []model.Bookmark
}

// Event is a one-shot navigation event from the home screen.
type Event interface{ homeEvent() }

// NavigateToDetail asks the UI to open the detail screen.
type NavigateToDetail struct{ BookmarkID string }

// NavigateToDeleteConfirmation asks the UI to open the delete dialog.
type NavigateToDeleteConfirmation struct{ BookmarkID string }

func (NavigateToDetail) homeEvent()             {}
func (NavigateToDeleteConfirmation) homeEvent() {}

// Controller drives the home screen. Intent methods return immediately;
// store calls run on their own goroutines and publish back through the
// state holder.
type Controller struct {
	repo   store.Repository
	queue  *intake.Queue
	log    logger.Logger
	state  *reactive.State[UiState]
	events *reactive.Events[Event]

	debounce time.Duration
	timerMu  sync.Mutex
	timer    *time.Timer

	cancels []func()
}

// ControllerParams holds the collaborators for a new Controller.
type ControllerParams struct {
	Repo store.Repository
	// Queue is optional; without it no intake draining happens.
	Queue *intake.Queue
	Log   logger.Logger
	// Debounce overrides DefaultSearchDebounce when positive.
	Debounce time.Duration
}

// NewController wires a Controller and starts observing the intake queue.
// It does not load; call Activate when the UI becomes active.
func NewController(params ControllerParams) *Controller {
	debounce := params.Debounce
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}

	c := &Controller{
		repo:     params.Repo,
		queue:    params.Queue,
		log:      params.Log,
		state:    reactive.NewState(UiState{Bookmarks: []model.Bookmark{}, Filtered: []model.Bookmark{}}),
		events:   reactive.NewEvents[Event](),
		debounce: debounce,
	}

	if c.queue != nil {
		c.observeIntake()
	}

	return c
}

// State exposes the observable snapshot.
func (c *Controller) State() *reactive.State[UiState] {
	return c.state
}

// Events exposes the one-shot navigation event stream.
func (c *Controller) Events() *reactive.Events[Event] {
	return c.events
}

// Activate triggers a load. Safe to call every time the UI comes to the
// foreground, not just once.
func (c *Controller) Activate() {
	go c.load()
}

// load fetches the list and publishes the settled state. On failure the
// previous bookmarks are preserved and only the error field changes.
func (c *Controller) load() {
	c.state.Update(func(s UiState) UiState {
		s.IsLoading = true
		return s
	})

	bookmarks, err := c.repo.List(context.Background())
	if err != nil {
		c.log.Warn("load failed", logger.Error(err))
		c.state.Update(func(s UiState) UiState {
			s.IsLoading = false
			s.Error = err.Error()
			return s
		})
		return
	}

	c.state.Update(func(s UiState) UiState {
		s.Bookmarks = bookmarks
		s.IsLoading = false
		s.Error = ""
		s.Filtered = search.Filter(bookmarks, s.SearchQuery)
		return s
	})
}

// Add stores the bookmark and reloads. The title gets the pre-add count
// suffixed, a lightweight trace of insertion order.
func (c *Controller) Add(bookmark model.Bookmark) {
	go func() {
		count := len(c.state.Get().Bookmarks)
		bookmark.Title = bookmark.Title + " " + strconv.Itoa(count)
		if err := c.repo.Add(context.Background(), bookmark); err != nil {
			c.state.Update(func(s UiState) UiState {
				s.Error = err.Error()
				return s
			})
			return
		}
		c.load()
	}()
}

// Delete removes the bookmark and reloads.
func (c *Controller) Delete(id string) {
	go func() {
		if err := c.repo.Delete(context.Background(), id); err != nil {
			c.state.Update(func(s UiState) UiState {
				s.Error = err.Error()
				return s
			})
			return
		}
		c.load()
	}()
}

// ClearAll empties the store and reloads.
func (c *Controller) ClearAll() {
	go func() {
		if err := c.repo.Clear(context.Background()); err != nil {
			c.state.Update(func(s UiState) UiState {
				s.Error = err.Error()
				return s
			})
			return
		}
		c.load()
	}()
}

// BookmarkClicked emits a NavigateToDetail event. State is untouched.
func (c *Controller) BookmarkClicked(id string) {
	c.events.Emit(NavigateToDetail{BookmarkID: id})
}

// DeleteBookmarkClicked emits a NavigateToDeleteConfirmation event.
func (c *Controller) DeleteBookmarkClicked(id string) {
	c.events.Emit(NavigateToDeleteConfirmation{BookmarkID: id})
}

// SearchQueryChanged echoes the query into state immediately and schedules
// the filter recompute after the debounce window. A newer query before the
// window elapses replaces the pending recompute: latest value wins.
func (c *Controller) SearchQueryChanged(query string) {
	c.state.Update(func(s UiState) UiState {
		s.SearchQuery = query
		return s
	})

	c.timerMu.Lock()
	defer c.timerMu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.state.Update(func(s UiState) UiState {
			if s.SearchQuery != query {
				// A newer query landed after this timer fired.
				return s
			}
			s.Filtered = search.Filter(s.Bookmarks, query)
			return s
		})
	})
}

// observeIntake drains pending share/deep-link values. Each slot has one
// drain goroutine that re-reads the slot after every change notification
// and consumes before handling, so a value is processed at most once and a
// value pending from before construction is not missed.
func (c *Controller) observeIntake() {
	c.drainLoop(c.queue.Share(), c.queue.ConsumeShare, func(text string) {
		content := intake.ExtractShared(text)
		c.log.Info("draining shared content", logger.String("title", content.Title))
		c.Add(model.NewBookmark(model.NewBookmarkParams{
			Title: content.Title,
			URL:   content.URL,
		}))
	})

	c.drainLoop(c.queue.Deeplink(), c.queue.ConsumeDeeplink, func(id string) {
		c.log.Info("draining deeplink", logger.String("id", id))
		c.events.Emit(NavigateToDetail{BookmarkID: id})
	})
}

func (c *Controller) drainLoop(slot *reactive.State[string], consume func(), handle func(string)) {
	ch, cancel := slot.Subscribe()
	c.cancels = append(c.cancels, cancel)

	go func() {
		for {
			if value := slot.Get(); value != "" {
				consume()
				handle(value)
				continue
			}
			if _, ok := <-ch; !ok {
				return
			}
		}
	}()
}

// Close tears down intake observation and any pending debounce timer. No
// in-flight store call is cancelled; its completion is simply abandoned.
func (c *Controller) Close() {
	c.timerMu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timerMu.Unlock()

	for _, cancel := range c.cancels {
		cancel()
	}
}
