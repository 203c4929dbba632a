// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package command holds the reconcile CLI's kong command definitions:
// merge-file (the diff3-shaped three-way file merge), reconcile (a richer
// JSON-in/JSON-out entry point with cursors and transport diffs), and
// batch (a manifest runner with a progress bar). None of this is part of
// the core engine in modules/reconcile — it is the thin collaborator
// surface spec.md §6 describes as shipped-but-non-core.
package command

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mergewright/reconcile/pkg/version"
)

// Globals holds the flags every subcommand receives, mirroring the
// teacher's pkg/command/command.go Globals/DbgPrint pattern.
type Globals struct {
	Verbose bool        `short:"V" name:"verbose" help:"Make the operation more talkative"`
	Version VersionFlag `short:"v" name:"version" help:"Show version number and quit"`
	NoColor bool        `name:"no-color" help:"Disable ANSI color output even when stdout is a terminal"`
}

// DbgPrint writes a yellow-bracketed diagnostic line to stderr, gated on
// Verbose, the way the teacher's Globals.DbgPrint does.
func (g *Globals) DbgPrint(format string, args ...any) {
	if !g.Verbose {
		return
	}
	message := strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
	var buffer bytes.Buffer
	for _, s := range strings.Split(message, "\n") {
		_, _ = buffer.WriteString("\x1b[33m* ")
		_, _ = buffer.WriteString(s)
		_, _ = buffer.WriteString("\x1b[0m\n")
	}
	_, _ = os.Stderr.Write(buffer.Bytes())
}

// VersionFlag prints the version string and exits, the same BeforeApply
// hook shape as the teacher's pkg/command/command.go.
type VersionFlag bool

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(version.GetVersionString())
	app.Exit(0)
	return nil
}

// Debuger is implemented by Globals; commands depend on the interface so
// they can be unit tested against a stub.
type Debuger interface {
	DbgPrint(format string, args ...any)
}

// ErrExitCode carries a specific process exit code out of a command's Run,
// mirroring the teacher's pkg/zeta.ErrExitCode (there used for diff3-style
// "conflict occurred" exits; reused here even though this engine never
// conflicts, so batch-mode partial failures still get a distinguishable
// exit code from the CLI entrypoint).
type ErrExitCode struct {
	ExitCode int
	Message  string
}

func (e *ErrExitCode) Error() string { return e.Message }

// IsExitCode reports whether err is an *ErrExitCode carrying code.
func IsExitCode(err error, code int) bool {
	var e *ErrExitCode
	if errors.As(err, &e) {
		return e.ExitCode == code
	}
	return false
}
