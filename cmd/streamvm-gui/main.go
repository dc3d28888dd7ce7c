// Command streamvm-gui opens the graphical state monitor for a
// StreamVM program, grounded on the teacher's GUI entry path in
// main.go (the -debug/-tui dispatch, generalized to a dedicated binary
// since fyne windows don't share a process with a terminal debugger).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/streamvm/streamvm/config"
	"github.com/streamvm/streamvm/gui"
	"github.com/streamvm/streamvm/service"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	svc := service.New(cfg)

	if flag.NArg() > 0 {
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading %s: %v\n", flag.Arg(0), err)
			os.Exit(1)
		}
		if err := svc.LoadProgram(string(data)); err != nil {
			fmt.Fprintf(os.Stderr, "load error: %v\n", err)
			os.Exit(1)
		}
	}

	gui.Run(svc)
}
