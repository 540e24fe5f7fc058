//go:build !ebiten

package main

import "github.com/pkg/errors"

// errNoGUI is returned by runGUI in builds without the ebiten tag.
var errNoGUI = errors.New("gui mode requires the ebiten build tag; rebuild with `go build -tags ebiten`")

func runGUI(*game) error {
	return errNoGUI
}
