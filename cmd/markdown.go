package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// printMarkdown renders doc for the terminal, or prints it raw when stdout is redirected.
func printMarkdown(doc string) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print(doc)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		log.Println("warning, cannot render markdown:", err)
		fmt.Print(doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		log.Println("warning, cannot render markdown:", err)
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}
