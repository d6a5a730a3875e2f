//go:build tools
// +build tools

// Package tools pins the mockgen version used by `go generate ./contract/...`
// so the mocks in mocks/ regenerate identically on a fresh checkout.
package chat_hub

import (
	_ "go.uber.org/mock/mockgen"
)
