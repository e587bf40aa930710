package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.error)
	assert.NotNil(t, logger.warn)
}

func newBufferedLogger() (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &Logger{
		info:  log.New(buf, "INFO: ", 0),
		warn:  log.New(buf, "WARN: ", 0),
		error: log.New(buf, "ERROR: ", 0),
	}, buf
}

func TestLogger_Levels(t *testing.T) {
	logger, buf := newBufferedLogger()

	logger.Info("video %s published", "v-1")
	logger.Warn("slow query: %dms", 250)
	logger.Error("upload failed: %s", "timeout")

	out := buf.String()
	assert.Contains(t, out, "INFO: video v-1 published")
	assert.Contains(t, out, "WARN: slow query: 250ms")
	assert.Contains(t, out, "ERROR: upload failed: timeout")
}

func TestLogger_Printf(t *testing.T) {
	logger, buf := newBufferedLogger()

	logger.Printf("%s rows", "3")

	assert.Equal(t, "INFO: 3 rows\n", buf.String())
}
