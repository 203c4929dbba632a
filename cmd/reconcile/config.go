// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// fileConfig is the optional .reconcile.toml this binary loads from the
// current directory, the way pkg/tr/translate.go decodes its embedded
// language tables with toml.NewDecoder(fd).Decode. Command-line flags
// always win over these defaults; this only supplies what a flag omits.
// Only the tokenizer key is applied (as the --tokenizer default); the color
// key is decoded but nothing reads it.
type fileConfig struct {
	Tokenizer string `toml:"tokenizer"`
	Color     string `toml:"color"` // "auto", "always", "never"
}

func loadConfig(path string) (fileConfig, error) {
	cfg := fileConfig{Tokenizer: "word", Color: "auto"}
	fd, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer fd.Close()
	if _, err := toml.NewDecoder(fd).Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
