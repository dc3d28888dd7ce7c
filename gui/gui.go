// Package gui is a read-only graphical monitor for a running
// service.Service, grounded on the teacher's debugger.GUI
// (debugger/gui.go): the same fyne.io/fyne toolbar+panel shape,
// trimmed from a full interactive debugger to a state monitor — no
// breakpoints, no memory/disassembly views, just registers, sensors,
// the stack, video state, and console output.
package gui

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/streamvm/streamvm/service"
)

// GUI is the graphical monitor window.
type GUI struct {
	Service *service.Service
	App     fyne.App
	Window  fyne.Window

	RegisterView *widget.TextGrid
	StackView    *widget.TextGrid
	VideoView    *widget.TextGrid
	ConsoleView  *widget.TextGrid
	StatusLabel  *widget.Label
	Toolbar      *widget.Toolbar

	consoleBuffer strings.Builder
	consoleMutex  sync.Mutex
}

// Run builds and shows the monitor window, blocking until it closes.
func Run(svc *service.Service) {
	g := New(svc)
	g.Window.ShowAndRun()
}

func New(svc *service.Service) *GUI {
	myApp := app.New()
	window := myApp.NewWindow("StreamVM Monitor")

	g := &GUI{Service: svc, App: myApp, Window: window}
	g.initializeViews()
	g.buildLayout()
	g.setupToolbar()
	svc.OnOutputLine(func(line string) {
		g.consoleMutex.Lock()
		g.consoleBuffer.WriteString(line)
		g.consoleBuffer.WriteString("\n")
		g.consoleMutex.Unlock()
		g.updateConsole()
	})

	window.Resize(fyne.NewSize(900, 600))
	return g
}

func (g *GUI) initializeViews() {
	g.RegisterView = widget.NewTextGrid()
	g.StackView = widget.NewTextGrid()
	g.VideoView = widget.NewTextGrid()
	g.ConsoleView = widget.NewTextGrid()
	g.StatusLabel = widget.NewLabel("Ready")
	g.refreshViews()
}

func (g *GUI) buildLayout() {
	registerPanel := container.NewBorder(widget.NewLabel("Registers & Sensors"), nil, nil, nil,
		container.NewScroll(g.RegisterView))
	stackPanel := container.NewBorder(widget.NewLabel("Stack"), nil, nil, nil,
		container.NewScroll(g.StackView))
	videoPanel := container.NewBorder(widget.NewLabel("Video"), nil, nil, nil,
		container.NewScroll(g.VideoView))
	consolePanel := container.NewBorder(widget.NewLabel("Console"), nil, nil, nil,
		container.NewScroll(g.ConsoleView))

	top := container.NewHSplit(registerPanel, stackPanel)
	top.SetOffset(0.5)

	tabs := container.NewAppTabs(
		container.NewTabItem("Video", videoPanel),
		container.NewTabItem("Console", consolePanel),
	)

	mainSplit := container.NewVSplit(top, tabs)
	mainSplit.SetOffset(0.5)

	statusBar := container.NewBorder(nil, nil, nil, nil, g.StatusLabel)
	content := container.NewBorder(g.Toolbar, statusBar, nil, nil, mainSplit)
	g.Window.SetContent(content)
}

func (g *GUI) setupToolbar() {
	g.Toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.MediaSkipNextIcon(), func() { g.step() }),
		widget.NewToolbarAction(theme.MediaPlayIcon(), func() { g.run() }),
		widget.NewToolbarAction(theme.MediaStopIcon(), func() { g.reset() }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() { g.refreshViews() }),
	)
}

func (g *GUI) step() {
	if err := g.Service.Step(); err != nil {
		g.StatusLabel.SetText(err.Error())
	} else {
		g.StatusLabel.SetText("stepped")
	}
	g.refreshViews()
}

func (g *GUI) run() {
	if err := g.Service.Run(0); err != nil {
		g.StatusLabel.SetText(err.Error())
	} else {
		g.StatusLabel.SetText("halted")
	}
	g.refreshViews()
}

func (g *GUI) reset() {
	g.Service.Reset()
	g.consoleMutex.Lock()
	g.consoleBuffer.Reset()
	g.consoleMutex.Unlock()
	g.StatusLabel.SetText("reset")
	g.refreshViews()
}

func (g *GUI) refreshViews() {
	g.updateRegisters()
	g.updateStack()
	g.updateVideo()
	g.updateConsole()
}

func (g *GUI) updateRegisters() {
	state := g.Service.State()
	var b strings.Builder
	fmt.Fprintf(&b, "PC     %d\n", state.PC)
	fmt.Fprintf(&b, "Steps  %d\n", state.Steps)
	fmt.Fprintf(&b, "Halted %t\n\n", state.Halted)
	for _, reg := range []string{"POS", "SPEED", "R0", "R1"} {
		fmt.Fprintf(&b, "%-6s %d\n", reg, state.Registers[reg])
	}
	b.WriteString("\n")
	for _, sensor := range []string{"DURATION", "IS_PLAYING", "ENDED"} {
		fmt.Fprintf(&b, "%-10s %d\n", sensor, state.Sensors[sensor])
	}
	g.RegisterView.SetText(b.String())
}

func (g *GUI) updateStack() {
	state := g.Service.State()
	var b strings.Builder
	for i := len(state.Stack) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "[%d] %d\n", i, state.Stack[i])
	}
	g.StackView.SetText(b.String())
}

func (g *GUI) updateVideo() {
	state := g.Service.State()
	if state.Video == nil {
		g.VideoView.SetText("no video loaded")
		return
	}
	g.VideoView.SetText(fmt.Sprintf("title: %s", *state.Video))
}

func (g *GUI) updateConsole() {
	g.consoleMutex.Lock()
	defer g.consoleMutex.Unlock()
	g.ConsoleView.SetText(g.consoleBuffer.String())
}
