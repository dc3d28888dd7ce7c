package debugger

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RunCLI runs a line-oriented debugger REPL over in and out, grounded
// on the teacher's RunCLI (debugger/interface.go).
func RunCLI(dbg *Debugger, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "(streamvm-dbg) ")
		if !scanner.Scan() {
			break
		}
		cmdLine := strings.TrimSpace(scanner.Text())

		if cmdLine == "quit" || cmdLine == "q" || cmdLine == "exit" {
			fmt.Fprintln(out, "Exiting debugger...")
			break
		}

		if err := dbg.ExecuteCommand(cmdLine); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		if output := dbg.GetOutput(); output != "" {
			fmt.Fprint(out, output)
		}
	}

	return scanner.Err()
}
