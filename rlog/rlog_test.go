package rlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilLoggerDiscardsSafely(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.With("state", "START").Debug("entering state")
		l.Warn("too many transitions")
	})
}

func TestWithChainsFields(t *testing.T) {
	l := Discard().With("document", "proto").With("state", "START")
	assert.NotPanics(t, func() { l.Debugf("validating %d transitions", 3) })
}
