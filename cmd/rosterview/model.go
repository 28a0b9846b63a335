// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/bonfire/client"
	"github.com/danielhkuo/bonfire/models"
)

// fetcher is the part of client.Client the viewer needs
type fetcher interface {
	Snapshot(ctx context.Context) (client.Snapshot, error)
}

type snapshotMsg client.Snapshot

type errMsg struct{ err error }

type tickMsg time.Time

var (
	refreshKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	quitKey    = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

type model struct {
	api      fetcher
	baseURL  string
	interval time.Duration
	timeout  time.Duration

	spinner  spinner.Model
	loading  bool
	snap     client.Snapshot
	hasSnap  bool
	lastErr  error
	now      func() time.Time
	barWidth int
}

func newModel(api fetcher, baseURL string, interval time.Duration) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = openStyle
	return model{
		api:      api,
		baseURL:  baseURL,
		interval: interval,
		timeout:  10 * time.Second,
		spinner:  sp,
		loading:  true,
		now:      time.Now,
		barWidth: 12,
	}
}

func (m model) fetch() tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		snap, err := api.Snapshot(ctx)
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg(snap)
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(), m.tick())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, quitKey):
			return m, tea.Quit
		case key.Matches(msg, refreshKey):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetch())
		}
		return m, nil

	case tickMsg:
		if m.loading {
			return m, m.tick()
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetch(), m.tick())

	case snapshotMsg:
		m.loading = false
		m.snap = client.Snapshot(msg)
		m.hasSnap = true
		m.lastErr = nil
		return m, nil

	case errMsg:
		m.loading = false
		m.lastErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	header := titleStyle.Render("Beach Bonfire") + "  " + mutedStyle.Render(m.baseURL)
	if m.loading {
		header += "  " + m.spinner.View()
	}
	b.WriteString(header + "\n\n")

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("✖ "+m.lastErr.Error()) + "\n\n")
	}

	if !m.hasSnap {
		b.WriteString(mutedStyle.Render("Loading board...") + "\n")
		return b.String()
	}

	board := m.boardView()
	people := m.rosterView()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(board), " ", panelStyle.Render(people)))
	b.WriteString("\n")

	status := fmt.Sprintf("updated %s", humanize.RelTime(m.snap.FetchedAt, m.now(), "ago", "from now"))
	b.WriteString(helpStyle.Render(status+"  ·  "+refreshKey.Help().Key+" "+refreshKey.Help().Desc+"  "+quitKey.Help().Key+" "+quitKey.Help().Desc) + "\n")
	return b.String()
}

// boardView lists items grouped by category in the canonical category order
func (m model) boardView() string {
	byCategory := make(map[models.Category][]models.NeededItem)
	taken := 0
	for _, it := range m.snap.Items {
		cat := models.ParseCategory(string(it.Category))
		byCategory[cat] = append(byCategory[cat], it)
		if it.Taken {
			taken++
		}
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("%s  %s %d  %s %d",
		headingStyle.Render("Needed items"),
		takenStyle.Render(markTaken), taken,
		openStyle.Render(markOpen), len(m.snap.Items)-taken,
	))
	if len(m.snap.Items) == 0 {
		lines = append(lines, mutedStyle.Render("nothing on the board"))
	}

	for _, cat := range models.Categories {
		items := byCategory[cat]
		if len(items) == 0 {
			continue
		}
		lines = append(lines, "", headingStyle.Render(strings.ToUpper(string(cat))))
		for _, it := range items {
			mark := openStyle.Render(markOpen)
			if it.Taken {
				mark = takenStyle.Render(markTaken)
			}
			line := fmt.Sprintf("%s %-18s %s", mark, it.Item, progressBar(it.QuantityBrought, it.QuantityNeeded, m.barWidth))
			if it.TakenBy != "" {
				line += "  " + mutedStyle.Render(it.TakenBy)
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m model) rosterView() string {
	r := m.snap.Roster
	lines := []string{fmt.Sprintf("%s  %s",
		headingStyle.Render("Who's coming"),
		mutedStyle.Render(fmt.Sprintf("%d people, %d signups", r.UniquePeople, r.TotalItems)),
	)}
	if len(r.Roster) == 0 {
		lines = append(lines, mutedStyle.Render("no signups yet"))
	}

	for _, c := range r.Roster {
		when := c.Timestamp
		if ts, err := time.Parse(time.RFC3339, c.Timestamp); err == nil {
			when = humanize.RelTime(ts, m.now(), "ago", "from now")
		}
		lines = append(lines, "", fmt.Sprintf("%s %s", c.Name, mutedStyle.Render(when)))
		for _, it := range c.Items {
			lines = append(lines, fmt.Sprintf("  %s × %d", it.Item, it.Quantity))
		}
	}
	return strings.Join(lines, "\n")
}
