package main

import (
	"os"

	"github.com/buehnenwerk/udo-story/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
