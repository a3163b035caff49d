package main

import (
	"os"

	"lpf/cmd"
	"lpf/internal/app"
	"lpf/internal/errors"
)

func main() {
	err := cmd.Execute()
	app.CloseDefault()
	if err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
