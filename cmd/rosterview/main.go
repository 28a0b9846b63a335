// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command rosterview is a live terminal view of the bonfire board and roster.
//
//	go run ./cmd/rosterview -url http://localhost:3318 -interval 5s
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielhkuo/bonfire/client"
)

func main() {
	fs := flag.NewFlagSet("rosterview", flag.ExitOnError)
	baseURL := fs.String("url", "http://localhost:3318", "Base URL of the bonfire server")
	interval := fs.Duration("interval", 5*time.Second, "Refresh interval")
	_ = fs.Parse(os.Args[1:])

	if *interval <= 0 {
		fmt.Fprintln(os.Stderr, errorStyle.Render("✖ -interval must be positive"))
		os.Exit(2)
	}

	m := newModel(client.New(*baseURL, nil), *baseURL, *interval)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		slog.Error("rosterview failed", "error", err)
		os.Exit(1)
	}
}
