// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Command reconcile is the binary entrypoint wiring pkg/command's kong
// commands around the three-way textual reconciliation engine in
// modules/reconcile, the way cmd/zeta/main.go wires the teacher's own
// command set around its repository engine.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mergewright/reconcile/pkg/command"
	"github.com/mergewright/reconcile/pkg/version"
)

// App is the top-level kong target: spec.md §6's merge-file CLI plus the
// richer reconcile/batch commands and a thin HTTP server this repository
// adds as illustrative, non-core surface.
type App struct {
	command.Globals
	MergeFile command.MergeFile `cmd:"merge-file" help:"Run a three-way file merge"`
	Reconcile command.Reconcile `cmd:"reconcile" help:"Reconcile a JSON three-way request"`
	Batch     command.Batch     `cmd:"batch" help:"Reconcile a manifest of requests"`
	Serve     Serve             `cmd:"serve" help:"Run the illustrative HTTP reconcile server"`
}

// defaultConfigPath is where main looks for an optional config file before
// kong has parsed any flags — a config flag can't override its own load
// path, so this mirrors the teacher's own fixed-name dotfile convention
// instead of offering a --config flag.
const defaultConfigPath = ".reconcile.toml"

func main() {
	var app App
	cfg, err := loadConfig(defaultConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reconcile: load config: %v\n", err)
		os.Exit(1)
	}

	ctx := kong.Parse(&app,
		kong.Name("reconcile"),
		kong.Description("Three-way textual reconciliation engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, NoExpandSubcommands: true}),
		kong.Vars{
			"version":           version.GetVersionString(),
			"default-tokenizer": cfg.Tokenizer,
		},
	)

	err = ctx.Run(&app.Globals)
	if err == nil {
		return
	}
	if e, ok := err.(*command.ErrExitCode); ok {
		fmt.Fprintln(os.Stderr, e.Message)
		os.Exit(e.ExitCode)
	}
	fmt.Fprintf(os.Stderr, "reconcile: %v\n", err)
	os.Exit(127)
}
