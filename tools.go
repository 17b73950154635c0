//go:build tools
// +build tools

package tools

// Pins the CLI tools the build and CI use so go.mod versions them alongside
// the library dependencies.

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/vektra/mockery/v2"
	_ "golang.org/x/perf/cmd/benchstat"
)
