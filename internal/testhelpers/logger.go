// Package testhelpers provides shared test utilities.
package testhelpers

import (
	"github.com/gazetadovale/newsdesk/internal/logger"
)

// NewTestLogger returns a logger that discards output.
func NewTestLogger() logger.Logger {
	return logger.NewNop()
}
