package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSplitsStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := New(&stdout, &stderr, false)

	logger.Debug("hidden")
	logger.Info("parsing")
	logger.Warn("careful")
	logger.Error("broken")
	_ = logger.Sync()

	assert.Equal(t, "parsing\n", stdout.String())
	assert.Equal(t, "careful\nbroken\n", stderr.String())
}

func TestNewDebug(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := New(&stdout, &stderr, true)

	logger.Debug("details")
	logger.Info("parsing")
	_ = logger.Sync()

	assert.Equal(t, "DEBUG\tdetails\nINFO\tparsing\n", stdout.String())
	assert.Empty(t, stderr.String())
}
