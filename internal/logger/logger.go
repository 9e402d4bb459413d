package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

var currentLevel atomic.Int32

func init() {
	currentLevel.Store(int32(LevelInfo))
}

// Init sends log output to stderr with timestamps and source locations,
// the format both the Lambda runtime and local runs expect
func Init(level string) {
	SetOutput(os.Stderr)
	SetFlags(log.LstdFlags | log.Lshortfile)
	SetLevel(ParseLevel(level))
}

func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

func SetFlags(flags int) {
	log.SetFlags(flags)
}

// ParseLevel maps a LOG_LEVEL value to a Level; unknown values mean info
func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func SetLevel(level Level) {
	currentLevel.Store(int32(level))
}

func CurrentLevel() Level {
	return Level(currentLevel.Load())
}

func EnabledDebug() bool {
	return enabled(LevelDebug)
}

func Debugf(format string, args ...any) {
	output(LevelDebug, format, args...)
}

func Infof(format string, args ...any) {
	output(LevelInfo, format, args...)
}

func Warnf(format string, args ...any) {
	output(LevelWarn, format, args...)
}

func Errorf(format string, args ...any) {
	output(LevelError, format, args...)
}

func Fatalf(format string, args ...any) {
	log.Fatalf("[FATAL] "+format, args...)
}

func output(level Level, format string, args ...any) {
	if enabled(level) {
		// depth 3 points Lshortfile at the caller of Debugf/Infof/...
		_ = log.Output(3, "["+level.String()+"] "+fmt.Sprintf(format, args...))
	}
}

func enabled(level Level) bool {
	return level >= CurrentLevel()
}
