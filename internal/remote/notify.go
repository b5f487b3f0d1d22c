package remote

import "motoclub-theme/internal/ui"

// Level classifies a user-facing notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier receives the user-facing outcome of an import.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) { f(level, message) }

// LogNotifier writes notifications to the service log.
type LogNotifier struct{}

func (LogNotifier) Notify(level Level, message string) {
	ui.LogStatus(string(level), message)
}
