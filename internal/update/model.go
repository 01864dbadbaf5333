package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/taskly/internal/countdown"
	"github.com/sandeepkv93/taskly/internal/model"
	"github.com/sandeepkv93/taskly/internal/notify"
)

type View string

const (
	ViewShopping  View = "Shopping"
	ViewCountdown View = "Countdown"
	ViewHistory   View = "History"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Shopping  string
	Countdown string
	History   string
	Help      string
	Quit      string
}

// Countdown is the part of countdown.Controller the UI drives.
type Countdown interface {
	Load(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
	MarkDone(ctx context.Context) (model.CountdownState, error)
	Snapshot() countdown.Snapshot
	Updates() <-chan countdown.Snapshot
	Interval() time.Duration
}

type ShoppingList interface {
	Load(ctx context.Context) error
	Items() []model.ShoppingItem
	Add(ctx context.Context, name string) (model.ShoppingItem, error)
	Delete(ctx context.Context, id string) error
	ToggleComplete(ctx context.Context, id string) (model.ShoppingItem, error)
}

type Deps struct {
	Countdown Countdown
	Shopping  ShoppingList
	Delivered <-chan notify.Delivered
	Context   context.Context
	Clock     func() time.Time
	// LoadErr is a countdown load failure from before the UI started.
	LoadErr error
}

type Model struct {
	CurrentView View
	Shopping    ShoppingState
	Countdown   CountdownState
	Palette     CommandPaletteState
	HelpVisible bool
	Notices     []Notice
	Status      StatusBar
	Keys        GlobalKeyMap
	Celebrating bool
	Quitting    bool
	LastError   error

	ctx       context.Context
	countdown Countdown
	shopping  ShoppingList
	delivered <-chan notify.Delivered
	clock     func() time.Time

	shoppingInput textinput.Model
	commandInput  textinput.Model
	loadSpinner   spinner.Model
	helpModel     help.Model
}

type ShoppingState struct {
	Items   []model.ShoppingItem
	Cursor  int
	Loaded  bool
	Typing  bool
	Confirm *model.ShoppingItem
}

type CountdownState struct {
	Snapshot countdown.Snapshot
	Marking  bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notice struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type SnapshotMsg struct {
	Snapshot countdown.Snapshot
}

type CountdownLoadedMsg struct {
	Err error
}

type ShoppingLoadedMsg struct {
	Items []model.ShoppingItem
	Err   error
}

type MarkDoneResultMsg struct {
	State model.CountdownState
	Err   error
}

type ShoppingChangedMsg struct {
	Op    string
	Item  model.ShoppingItem
	Items []model.ShoppingItem
	Err   error
}

type ReminderDeliveredMsg struct {
	Delivered notify.Delivered
}

// PermissionAlertMsg is sent by the notification reconciler when reminders
// cannot be scheduled.
type PermissionAlertMsg struct {
	Title   string
	Message string
}

type CelebrateMsg struct{}

type celebrationDoneMsg struct{}

const celebrationDuration = 2 * time.Second

func NewModel(deps Deps) Model {
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		CurrentView: ViewCountdown,
		Keys: GlobalKeyMap{
			Shopping:  "1",
			Countdown: "2",
			History:   "3",
			Help:      "?",
			Quit:      "q",
		},
		Countdown: CountdownState{
			Snapshot: countdown.Snapshot{Phase: countdown.PhaseLoading},
		},
		ctx:       ctx,
		countdown: deps.Countdown,
		shopping:  deps.Shopping,
		delivered: deps.Delivered,
		clock:     deps.Clock,
	}
	m.initBubbleComponents()
	if deps.LoadErr != nil {
		m.setError(deps.LoadErr)
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.shoppingInput = textinput.New()
	m.shoppingInput.Prompt = "add> "
	m.shoppingInput.Placeholder = "E.g. Coffee"
	m.shoppingInput.CharLimit = 256
	m.shoppingInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.loadSpinner = spinner.New()
	m.loadSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}
