package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI is the text user interface over a Debugger, grounded on the
// teacher's TUI (debugger/tui.go): the same App/Pages/panel shape,
// generalized from disassembly+memory+registers+breakpoints to
// StreamVM's smaller state surface (registers, sensors, stack, video).
type TUI struct {
	Debugger *Debugger
	App      *tview.Application
	Pages    *tview.Pages

	MainLayout   *tview.Flex
	StateView    *tview.TextView
	StackView    *tview.TextView
	OutputView   *tview.TextView
	CommandInput *tview.InputField
}

func NewTUI(dbg *Debugger) *TUI {
	t := &TUI{
		Debugger: dbg,
		App:      tview.NewApplication(),
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	return t
}

func (t *TUI) initializeViews() {
	t.StateView = tview.NewTextView().SetDynamicColors(true).SetScrollable(false)
	t.StateView.SetBorder(true).SetTitle(" State ")

	t.StackView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.StackView.SetBorder(true).SetTitle(" Stack ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	top := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.StateView, 0, 2, false).
		AddItem(t.StackView, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 3, false).
		AddItem(t.OutputView, 0, 2, false).
		AddItem(t.CommandInput, 3, 0, true)

	t.Pages = tview.NewPages().AddPage("main", t.MainLayout, true, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			t.executeCommand("help")
			return nil
		case tcell.KeyF5:
			t.executeCommand("run")
			return nil
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key == tcell.KeyEnter {
		cmd := t.CommandInput.GetText()
		if cmd != "" {
			t.executeCommand(cmd)
			t.CommandInput.SetText("")
		}
	}
}

func (t *TUI) executeCommand(cmd string) {
	err := t.Debugger.ExecuteCommand(cmd)
	output := t.Debugger.GetOutput()

	if err != nil {
		t.WriteOutput(fmt.Sprintf("[red]Error:[white] %v\n", err))
	}
	if output != "" {
		t.WriteOutput(output)
	}
	t.RefreshAll()
}

func (t *TUI) WriteOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

func (t *TUI) RefreshAll() {
	t.UpdateStateView()
	t.UpdateStackView()
	t.App.Draw()
}

func (t *TUI) UpdateStateView() {
	state := t.Debugger.Service.State()
	var b strings.Builder
	fmt.Fprintf(&b, "PC:     %d\n", state.PC)
	fmt.Fprintf(&b, "Steps:  %d\n", state.Steps)
	fmt.Fprintf(&b, "Halted: %t\n\n", state.Halted)
	for _, reg := range []string{"POS", "SPEED", "R0", "R1"} {
		fmt.Fprintf(&b, "%-6s %d\n", reg, state.Registers[reg])
	}
	b.WriteString("\n")
	for _, sensor := range []string{"DURATION", "IS_PLAYING", "ENDED"} {
		fmt.Fprintf(&b, "%-10s %d\n", sensor, state.Sensors[sensor])
	}
	if state.Video != nil {
		fmt.Fprintf(&b, "\nvideo: %s\n", *state.Video)
	} else {
		b.WriteString("\nvideo: <none>\n")
	}
	t.StateView.SetText(b.String())
}

func (t *TUI) UpdateStackView() {
	state := t.Debugger.Service.State()
	var b strings.Builder
	for i := len(state.Stack) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "[%d] %d\n", i, state.Stack[i])
	}
	t.StackView.SetText(b.String())
}

// Run starts the TUI event loop.
func (t *TUI) Run() error {
	t.RefreshAll()
	t.WriteOutput("[green]StreamVM Debugger[white]\n")
	t.WriteOutput("Press F1 for help, F5 to run, F11 to step\n\n")
	return t.App.SetRoot(t.Pages, true).SetFocus(t.CommandInput).Run()
}

func (t *TUI) Stop() {
	t.App.Stop()
}
