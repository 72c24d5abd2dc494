package main

import (
	"fmt"
	"os"

	"github.com/oakwood-commons/qcompose/cmd"
	"github.com/oakwood-commons/qcompose/pkg/logger"
)

func main() {
	err := cmd.Execute()
	if msg := cmd.ErrorMessage(err); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}

	logger.Sync()
	if code := cmd.ExitCode(err); code != cmd.ExitOK {
		os.Exit(code)
	}
}
