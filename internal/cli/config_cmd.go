// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

// config_cmd.go - Configuration inspection and editing.
package cli

import (
	"fmt"
	"os"

	"github.com/wonderxxxx/super-chizuko/internal/config"
)

// HandleConfig dispatches the "config" subcommands:
//
//	config list             print all keys and current values
//	config get <key>        print one value
//	config set <key> <val>  update a value and save
//	config path             print the config file location
func HandleConfig(args []string) {
	if len(args) == 0 {
		handleConfigList()
		return
	}

	switch args[0] {
	case "list", "ls":
		handleConfigList()
	case "get":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "Usage: chizuko config get <key>")
			os.Exit(1)
		}
		handleConfigGet(args[1])
	case "set":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, "Usage: chizuko config set <key> <value>")
			os.Exit(1)
		}
		handleConfigSet(args[1], args[2])
	case "path":
		handleConfigPath()
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: chizuko config [list|get|set|path]")
		os.Exit(1)
	}
}

func handleConfigList() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, key := range config.Keys() {
		value, _ := cfg.Get(key)
		fmt.Printf("%-22s = %s\n", key, value)
	}
}

func handleConfigGet(key string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	value, err := cfg.Get(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

func handleConfigSet(key, value string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Set(key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s = %s\n", key, value)
}

func handleConfigPath() {
	path, err := config.ConfigPathTOML()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(path)
}
