//go:build tools

package tools

// This file tracks CLI tool dependencies.
// It is not compiled into the binary.
//
// - github.com/pressly/goose/v3/cmd/goose: declared in go.mod's tool block
// - github.com/matryer/moq: installed separately, used by go:generate
