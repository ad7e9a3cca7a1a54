package logging

import (
	"github.com/bitrise-io/go-utils/v2/log"
)

// Level ...
type Level string

// Message levels, ordered by severity.
const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelNotice  Level = "notice"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Logger is the message sink used by the conversion and upload pipeline.
type Logger interface {
	Message(level Level, text string)
}

type logger struct {
	stepLogger log.Logger
}

// NewLogger wraps the step logger into a message sink.
func NewLogger(stepLogger log.Logger) Logger {
	return &logger{stepLogger: stepLogger}
}

func (l logger) Message(level Level, text string) {
	switch level {
	case LevelDebug:
		l.stepLogger.Debugf("%s", text)
	case LevelNotice:
		l.stepLogger.Donef("%s", text)
	case LevelWarning:
		l.stepLogger.Warnf("%s", text)
	case LevelError:
		l.stepLogger.Errorf("%s", text)
	default:
		l.stepLogger.Printf("%s", text)
	}
}
