package gui

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/streamvm/streamvm/service"
)

func newTestGUI(t *testing.T) *GUI {
	t.Helper()
	svc := service.New(nil)
	testApp := test.NewApp()
	t.Cleanup(testApp.Quit)

	g := &GUI{Service: svc, App: testApp}
	g.initializeViews()
	return g
}

func TestGUICreationInitializesViews(t *testing.T) {
	g := newTestGUI(t)
	if g.RegisterView == nil || g.StackView == nil || g.VideoView == nil || g.ConsoleView == nil {
		t.Fatal("expected all panels to be initialized")
	}
}

func TestRegisterViewShowsRegisterNames(t *testing.T) {
	g := newTestGUI(t)
	g.updateRegisters()
	text := g.RegisterView.Text()
	for _, reg := range []string{"POS", "SPEED", "R0", "R1"} {
		if !strings.Contains(text, reg) {
			t.Errorf("expected register view to contain %s, got %q", reg, text)
		}
	}
}

func TestVideoViewReflectsOpenVideo(t *testing.T) {
	g := newTestGUI(t)
	if err := g.Service.LoadProgram(`OPEN "clip"` + "\nHALT"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := g.Service.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}
	g.updateVideo()
	if !strings.Contains(g.VideoView.Text(), "clip") {
		t.Errorf("expected video view to show title, got %q", g.VideoView.Text())
	}
}

func TestStepUpdatesStatusLabel(t *testing.T) {
	g := newTestGUI(t)
	if err := g.Service.LoadProgram("PUSH 1\nHALT"); err != nil {
		t.Fatalf("load: %v", err)
	}
	g.step()
	if g.StatusLabel.Text != "stepped" {
		t.Errorf("expected status 'stepped', got %q", g.StatusLabel.Text)
	}
}
