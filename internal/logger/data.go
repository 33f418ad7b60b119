package logger

import "sync"

// Logger provides levelled logging tagged by component

type Logger struct {
	MinLevel LogLevel
	mu       sync.Mutex
}

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// New returns a logger that drops messages below level
func New(level LogLevel) *Logger {
	return &Logger{MinLevel: level}
}
