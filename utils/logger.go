package utils

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
)

// NewLogger builds a text logger writing to w at the named level
// (debug, info, warn or error)
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "[NewLogger] bad level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
