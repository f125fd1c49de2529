package main

import (
	"fmt"
	"os"
)

func main() {
	app := &appContext{}
	err := newRootCommand(app).Execute()
	if err != nil {
		if app.logger != nil {
			app.logger.Error("%v", err)
		} else {
			fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		}
	}
	app.close()
	if err != nil {
		os.Exit(1)
	}
}
