package main

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"bigtrip/cmd"
)

func main() {
	if os.Getenv("BIGTRIP_DEBUG") != "" {
		f, err := tea.LogToFile("bigtrip.log", "bigtrip")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	} else {
		// The alternate screen owns the terminal; stray log output
		// would corrupt it.
		log.SetOutput(io.Discard)
	}

	cmd.Execute()
}
