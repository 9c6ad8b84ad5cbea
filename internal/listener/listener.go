// Package listener observes scenario lifecycle events. Listeners only report;
// they never change a scenario's outcome.
package listener

import (
	"time"

	"go.uber.org/zap"
)

type Listener interface {
	OnStart(name string)
	OnSuccess(name string, elapsed time.Duration)
	OnFailure(name string, err error)
}

// ConsoleListener writes one human-readable line per event.
type ConsoleListener struct {
	logger *zap.SugaredLogger
}

func NewConsoleListener(logger *zap.SugaredLogger) *ConsoleListener {
	return &ConsoleListener{logger: logger}
}

func (l *ConsoleListener) OnStart(name string) {
	l.logger.Infof("Starting test: %s", name)
}

func (l *ConsoleListener) OnSuccess(name string, elapsed time.Duration) {
	l.logger.Infof("Test passed: %s (%s)", name, elapsed.Round(time.Millisecond))
}

func (l *ConsoleListener) OnFailure(name string, err error) {
	l.logger.Errorf("Test failed: %s: %v", name, err)
}

// Multi fans every event out to each listener in order.
type Multi []Listener

func (m Multi) OnStart(name string) {
	for _, l := range m {
		l.OnStart(name)
	}
}

func (m Multi) OnSuccess(name string, elapsed time.Duration) {
	for _, l := range m {
		l.OnSuccess(name, elapsed)
	}
}

func (m Multi) OnFailure(name string, err error) {
	for _, l := range m {
		l.OnFailure(name, err)
	}
}
