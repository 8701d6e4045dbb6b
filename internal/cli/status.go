// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

// status.go - Backend and storage status reporting.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/wonderxxxx/super-chizuko/internal/config"
	"github.com/wonderxxxx/super-chizuko/internal/gateway"
	"github.com/wonderxxxx/super-chizuko/internal/store"
	"github.com/wonderxxxx/super-chizuko/internal/ui/styles"
)

var (
	statusOKStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	statusBadStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	statusLabelStyle = lipgloss.NewStyle().
				Foreground(styles.TextDim).
				Width(12)
)

// HandleStatus prints backend reachability and local storage state.
func HandleStatus(args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client := gateway.NewClientWithConfig(&gateway.ClientConfig{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.RequestTimeout(),
	})

	fmt.Println(statusLabelStyle.Render("Backend") + cfg.BackendURL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	healthErr := client.CheckHealth(ctx)
	cancel()

	if healthErr == nil {
		fmt.Println(statusLabelStyle.Render("Health") + statusOKStyle.Render("ok"))
	} else {
		fmt.Println(statusLabelStyle.Render("Health") + statusBadStyle.Render("unreachable"))
		fmt.Println(statusLabelStyle.Render("") + infoStyle.Render(healthErr.Error()))
	}

	storePath := cfg.StorePath
	if storePath == "" {
		storePath = store.DefaultPath()
	}
	st := store.Open(storePath)
	defer st.Close()

	fmt.Println(statusLabelStyle.Render("Store") + storePath)
	if st.Persistent() {
		fmt.Println(statusLabelStyle.Render("Persistence") + statusOKStyle.Render("ok"))
	} else {
		fmt.Println(statusLabelStyle.Render("Persistence") + statusBadStyle.Render("memory only"))
	}

	if last, ok := st.LastIdentity(); ok {
		count := len(st.History(last))
		fmt.Println(statusLabelStyle.Render("Identity") + last)
		fmt.Println(statusLabelStyle.Render("History") + fmt.Sprintf("%d message(s)", count))
	} else {
		fmt.Println(statusLabelStyle.Render("Identity") + infoStyle.Render("none yet"))
	}

	if healthErr != nil {
		os.Exit(1)
	}
}
