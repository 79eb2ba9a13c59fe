package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/baberabb/lm-evaluation-harness-sub001/cmd"
	errUtils "github.com/baberabb/lm-evaluation-harness-sub001/errors"
)

func main() {
	// Exit with the correct POSIX code (128 + signal number) on interrupt.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		if s, ok := sig.(syscall.Signal); ok {
			errUtils.OsExit(128 + int(s))
		}
		errUtils.OsExit(130)
	}()

	err := cmd.Execute()
	errUtils.CheckErrorPrintAndExit(err)
}
