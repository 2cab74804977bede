// Command chat-client is a terminal client for the marketplace chat. It
// logs in over REST and then talks to the websocket endpoint.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	defaultServer := os.Getenv("CHAT_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:3000"
	}
	server := flag.String("server", defaultServer, "marketplace server base URL")
	flag.Parse()

	p := tea.NewProgram(initialModel(*server))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
