package cmd

import (
	"os"
	"runtime"

	tea "charm.land/bubbletea/v2"
)

var (
	isTerminal       = func(f *os.File) bool { st, err := f.Stat(); return err == nil && st.Mode()&os.ModeCharDevice != 0 }
	openTerminalIOFn = openTerminalIO
)

// getProgramOptions points the program at the controlling terminal when stdin
// or stdout is redirected, so `q=$(qcompose)` still draws on the screen while
// only the query reaches stdout. The cleanup closes any opened devices.
func getProgramOptions() ([]tea.ProgramOption, func()) {
	noop := func() {}
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		return nil, noop
	}
	ttyIn, ttyOut, err := openTerminalIOFn()
	if err != nil {
		// no controlling terminal (CI); run on the standard streams
		return nil, noop
	}
	opts := []tea.ProgramOption{tea.WithInput(ttyIn)}
	if ttyOut != nil {
		opts = append(opts, tea.WithOutput(ttyOut))
	}
	return opts, func() {
		_ = ttyIn.Close()
		if ttyOut != nil && ttyOut != ttyIn {
			_ = ttyOut.Close()
		}
	}
}

func openTerminalIO() (*os.File, *os.File, error) {
	in, out := terminalDeviceNames(runtime.GOOS)
	input, err := os.OpenFile(in, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	if out == in {
		return input, input, nil
	}
	output, err := os.OpenFile(out, os.O_RDWR, 0)
	if err != nil {
		_ = input.Close()
		return nil, nil, err
	}
	return input, output, nil
}

func terminalDeviceNames(goos string) (input string, output string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}
	return "/dev/tty", "/dev/tty"
}
