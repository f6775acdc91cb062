package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ibericastore/whatstriage/internal/config"
	"github.com/ibericastore/whatstriage/internal/ui"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "init" {
		if err := config.SaveExampleConfig(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if dir, err := config.GetConfigDir(); err == nil {
			fmt.Printf("Config ready at %s\n", dir)
		}
		return
	}

	m := ui.NewModel()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
