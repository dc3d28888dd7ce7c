package debugger

import (
	"fmt"
	"os"
	"strconv"
)

func (d *Debugger) cmdLoad(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: load <path>")
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if err := d.Service.LoadProgram(string(source)); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	d.Println("Program loaded.")
	return nil
}

func (d *Debugger) cmdStep(args []string) error {
	n := 1
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("usage: step [count]")
		}
		n = parsed
	}
	for i := 0; i < n; i++ {
		if err := d.Service.Step(); err != nil {
			d.Printf("stopped: %v\n", err)
			return nil
		}
		if d.Service.State().Halted {
			d.Println("program halted")
			return nil
		}
	}
	return nil
}

func (d *Debugger) cmdRun(args []string) error {
	maxSteps := 0
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("usage: run [max-steps]")
		}
		maxSteps = parsed
	}
	if err := d.Service.Run(maxSteps); err != nil {
		d.Printf("stopped: %v\n", err)
		return nil
	}
	d.Println("program halted")
	return nil
}

func (d *Debugger) cmdReset(args []string) error {
	d.Service.Reset()
	d.Println("Machine reset.")
	return nil
}

func (d *Debugger) cmdPrint(args []string) error {
	state := d.Service.State()
	d.Printf("pc=%d steps=%d halted=%t\n", state.PC, state.Steps, state.Halted)
	for _, reg := range []string{"POS", "SPEED", "R0", "R1"} {
		d.Printf("%s=%d\n", reg, state.Registers[reg])
	}
	for _, sensor := range []string{"DURATION", "IS_PLAYING", "ENDED"} {
		d.Printf("%s=%d\n", sensor, state.Sensors[sensor])
	}
	if state.Video != nil {
		d.Printf("video=%q\n", *state.Video)
	} else {
		d.Println("video=<none>")
	}
	d.Printf("stack=%v\n", state.Stack)
	return nil
}

func (d *Debugger) cmdOutput(args []string) error {
	for _, line := range d.Service.Output() {
		d.Println(line)
	}
	return nil
}

func (d *Debugger) cmdHelp(args []string) error {
	d.Println("Commands:")
	d.Println("  load <path>     read, assemble and load a program file")
	d.Println("  step [n]        execute n instructions (default 1)")
	d.Println("  run [max]       run to completion or a step limit")
	d.Println("  reset           clear all machine state")
	d.Println("  print           show registers, sensors, stack, video")
	d.Println("  output          show lines printed by the program")
	d.Println("  help            show this message")
	return nil
}
