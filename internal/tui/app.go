// Package tui is the interactive front-end. It renders the controller
// snapshots and translates key presses into controller intents; all
// bookmark logic stays behind the controllers.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"hoard/internal/deleteconfirm"
	"hoard/internal/detail"
	"hoard/internal/home"
	"hoard/internal/intake"
	"hoard/internal/logger"
	"hoard/internal/model"
	"hoard/internal/store"
)

const statusLifetime = 2 * time.Second

type screen int

const (
	screenList screen = iota
	screenAdd
	screenDetail
	screenConfirm
)

// detailScreen bundles a detail controller with its subscriptions. A new
// one is created per opened bookmark.
type detailScreen struct {
	controller *detail.Controller
	state      detail.UiState
	stateCh    <-chan detail.UiState
	eventCh    <-chan detail.Event
	cancels    []func()
	gen        int
}

// confirmScreen bundles a delete confirmation controller likewise.
type confirmScreen struct {
	controller *deleteconfirm.Controller
	state      deleteconfirm.UiState
	stateCh    <-chan deleteconfirm.UiState
	eventCh    <-chan deleteconfirm.Event
	cancels    []func()
	gen        int
}

// App is the main bubbletea model for the bookmark manager.
type App struct {
	repo  store.Repository
	queue *intake.Queue
	log   logger.Logger

	keys   KeyMap
	styles Styles

	home        *home.Controller
	homeState   home.UiState
	homeStateCh <-chan home.UiState
	homeEventCh <-chan home.Event
	homeCancels []func()

	det  *detailScreen
	conf *confirmScreen

	// Generation counters; bumped whenever a screen closes so pending
	// messages from it are discarded.
	detailGen  int
	confirmGen int

	screen screen
	cursor int

	filtering bool
	filter    textinput.Model

	// Add form inputs: title, url, notes.
	addInputs []textinput.Model
	addFocus  int

	editingNotes bool
	notesInput   textinput.Model

	status   string
	statusID int

	// For gg command
	lastKeyWasG bool

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Repo  store.Repository
	Queue *intake.Queue // optional, enables share/deep-link intake
	Log   logger.Logger
	// Debounce overrides the default search debounce when positive.
	Debounce time.Duration
	Keys     *KeyMap // optional, uses default if nil
	Styles   *Styles // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	controller := home.NewController(home.ControllerParams{
		Repo:     params.Repo,
		Queue:    params.Queue,
		Log:      params.Log,
		Debounce: params.Debounce,
	})

	app := App{
		repo:   params.Repo,
		queue:  params.Queue,
		log:    params.Log,
		keys:   keys,
		styles: styles,
		home:   controller,
		screen: screenList,
		width:  80,
		height: 24,
	}

	stateCh, cancelState := controller.State().Subscribe()
	eventCh, cancelEvents := controller.Events().Subscribe()
	app.homeStateCh = stateCh
	app.homeEventCh = eventCh
	app.homeCancels = []func(){cancelState, cancelEvents}
	app.homeState = controller.State().Get()

	app.filter = textinput.New()
	app.filter.Prompt = "/"
	app.filter.Placeholder = "filter"

	app.addInputs = make([]textinput.Model, 3)
	for i, placeholder := range []string{"title", "url", "notes"} {
		input := textinput.New()
		input.Placeholder = placeholder
		app.addInputs[i] = input
	}

	app.notesInput = textinput.New()
	app.notesInput.Placeholder = "notes"

	return app
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Screen reports which screen is showing, for tests.
func (a App) Screen() screen {
	return a.screen
}

// visible returns the bookmarks the list screen shows.
func (a App) visible() []model.Bookmark {
	return a.homeState.Filtered
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	a.home.Activate()
	return tea.Batch(
		waitHomeState(a.homeStateCh),
		waitHomeEvent(a.homeEventCh),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case homeStateMsg:
		a.homeState = home.UiState(msg)
		if last := len(a.visible()) - 1; a.cursor > last {
			a.cursor = last
		}
		if a.cursor < 0 {
			a.cursor = 0
		}
		return a, waitHomeState(a.homeStateCh)

	case homeEventMsg:
		next, cmd := a.handleHomeEvent(msg.event)
		return next, tea.Batch(cmd, waitHomeEvent(a.homeEventCh))

	case detailStateMsg:
		if a.det == nil || msg.gen != a.det.gen {
			return a, nil
		}
		a.det.state = msg.state
		return a, waitDetailState(a.det.gen, a.det.stateCh)

	case detailEventMsg:
		if a.det == nil || msg.gen != a.det.gen {
			return a, nil
		}
		next, cmd := a.handleDetailEvent(msg.event)
		return next, tea.Batch(cmd, waitDetailEvent(msg.gen, a.det.eventCh))

	case confirmStateMsg:
		if a.conf == nil || msg.gen != a.conf.gen {
			return a, nil
		}
		a.conf.state = msg.state
		return a, waitConfirmState(a.conf.gen, a.conf.stateCh)

	case confirmEventMsg:
		if a.conf == nil || msg.gen != a.conf.gen {
			return a, nil
		}
		return a.handleConfirmEvent(msg.event)

	case statusExpiredMsg:
		if msg.id == a.statusID {
			a.status = ""
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case screenAdd:
		return a.updateAdd(msg)
	case screenDetail:
		if a.editingNotes {
			return a.updateNotes(msg)
		}
		return a.updateDetail(msg)
	case screenConfirm:
		return a.updateConfirm(msg)
	default:
		if a.filtering {
			return a.updateFilter(msg)
		}
		return a.updateList(msg)
	}
}

// setStatus shows a transient message in the footer.
func (a *App) setStatus(text string) tea.Cmd {
	a.status = text
	a.statusID++
	id := a.statusID
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}

// shutdown tears everything down before quitting.
func (a *App) shutdown() tea.Cmd {
	a.closeConfirm()
	a.closeDetail()
	for _, cancel := range a.homeCancels {
		cancel()
	}
	a.home.Close()
	return tea.Quit
}

// openDetail builds a detail screen for the bookmark and loads it.
func (a *App) openDetail(id string) tea.Cmd {
	a.closeDetail()
	a.detailGen++

	controller := detail.NewController(detail.ControllerParams{
		Repo:       a.repo,
		Log:        a.log,
		BookmarkID: id,
	})
	stateCh, cancelState := controller.State().Subscribe()
	eventCh, cancelEvents := controller.Events().Subscribe()

	a.det = &detailScreen{
		controller: controller,
		stateCh:    stateCh,
		eventCh:    eventCh,
		cancels:    []func(){cancelState, cancelEvents},
		gen:        a.detailGen,
	}
	a.screen = screenDetail
	a.editingNotes = false

	controller.Load()
	return tea.Batch(
		waitDetailState(a.det.gen, stateCh),
		waitDetailEvent(a.det.gen, eventCh),
	)
}

func (a *App) closeDetail() {
	if a.det == nil {
		return
	}
	for _, cancel := range a.det.cancels {
		cancel()
	}
	a.det = nil
	a.detailGen++
	a.editingNotes = false
}

// openConfirm builds a delete confirmation screen for the bookmark.
func (a *App) openConfirm(id string) tea.Cmd {
	a.closeConfirm()
	a.confirmGen++

	controller := deleteconfirm.NewController(deleteconfirm.ControllerParams{
		Repo:       a.repo,
		Log:        a.log,
		BookmarkID: id,
	})
	stateCh, cancelState := controller.State().Subscribe()
	eventCh, cancelEvents := controller.Events().Subscribe()

	a.conf = &confirmScreen{
		controller: controller,
		stateCh:    stateCh,
		eventCh:    eventCh,
		cancels:    []func(){cancelState, cancelEvents},
		gen:        a.confirmGen,
	}
	a.screen = screenConfirm

	controller.Load()
	return tea.Batch(
		waitConfirmState(a.conf.gen, stateCh),
		waitConfirmEvent(a.conf.gen, eventCh),
	)
}

func (a *App) closeConfirm() {
	if a.conf == nil {
		return
	}
	for _, cancel := range a.conf.cancels {
		cancel()
	}
	a.conf = nil
	a.confirmGen++
}

func (a App) handleHomeEvent(event home.Event) (tea.Model, tea.Cmd) {
	switch event := event.(type) {
	case home.NavigateToDetail:
		return a, a.openDetail(event.BookmarkID)
	case home.NavigateToDeleteConfirmation:
		return a, a.openConfirm(event.BookmarkID)
	}
	return a, nil
}

func (a App) handleDetailEvent(event detail.Event) (tea.Model, tea.Cmd) {
	switch event := event.(type) {
	case detail.NavigateBack:
		a.closeDetail()
		a.screen = screenList
		a.home.Activate()
		return a, nil
	case detail.NavigateToDeleteConfirmation:
		return a, a.openConfirm(event.BookmarkID)
	}
	return a, nil
}

func (a App) handleConfirmEvent(event deleteconfirm.Event) (tea.Model, tea.Cmd) {
	switch event.(type) {
	case deleteconfirm.Dismissed:
		a.closeConfirm()
		if a.det != nil {
			a.screen = screenDetail
		} else {
			a.screen = screenList
		}
		return a, nil
	case deleteconfirm.DeleteConfirmed:
		a.closeConfirm()
		a.closeDetail()
		a.screen = screenList
		a.home.Activate()
		return a, nil
	}
	return a, nil
}
