// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mergewright/reconcile/modules/reconcache"
	"github.com/mergewright/reconcile/pkg/command"
	"github.com/mergewright/reconcile/pkg/reconcileserver"
)

// Serve runs the illustrative HTTP reconcile server (pkg/reconcileserver),
// the thin binding spec.md §6 mentions alongside the WASM surface and the
// vault server this spec's core never implements.
type Serve struct {
	Addr     string `name:"addr" default:":8765" help:"Address to listen on"`
	NoCache  bool   `name:"no-cache" help:"Disable the in-process reconciliation cache"`
	CacheMiB int64  `name:"cache-mib" default:"64" help:"Approximate cache size in MiB"`
}

func (c *Serve) Run(g *command.Globals) error {
	var cache *reconcache.Cache
	if !c.NoCache {
		var err error
		if cache, err = reconcache.New(reconcache.Config{MaxCostMiB: c.CacheMiB}); err != nil {
			return fmt.Errorf("serve: create cache: %w", err)
		}
		defer cache.Close()
	}

	logger := logrus.StandardLogger()
	if g.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	srv := reconcileserver.New(c.Addr, cache, logger)
	logger.Infof("reconcile server listening on %s", c.Addr)
	return srv.ListenAndServe()
}
