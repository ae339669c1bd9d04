package ltimiddleware

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/edutools/go-lti-middleware/validator"
)

// the same concrete logger must satisfy both logging interfaces.
var (
	_ Logger           = &DefaultLogger{}
	_ validator.Logger = &DefaultLogger{}
)

func TestDefaultLogger(t *testing.T) {
	logger := &DefaultLogger{}

	logger.Debugf("debug message: %s", "test")
	logger.Infof("info message: %s", "test")
	logger.Warnf("warn message: %s", "test")
	logger.Errorf("error message: %s", "test")
}

func TestZapLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := NewZapLogger(zap.New(core).Sugar())

	logger.Debugf("debug message: %s", "test")
	assert.Equal(t, 0, recorded.Len())

	logger.Infof("info message: %s", "test")
	assert.Equal(t, 1, recorded.Len())
	assert.Equal(t, "info message: test", recorded.All()[0].Message)

	logger.Warnf("warn message: %s", "test")
	logger.Errorf("error message: %s", "test")
	assert.Equal(t, 3, recorded.Len())
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	logger.Infof("launch from %s", "moodle")
	assert.Contains(t, buf.String(), "launch from moodle")
}

func TestLogrusLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	logger := NewLogrusLogger(l)

	logger.Warnf("launch from %s", "moodle")
	assert.Contains(t, buf.String(), "launch from moodle")
}
