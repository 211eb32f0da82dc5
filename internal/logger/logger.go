package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level is a leveled sink with the Println/Printf surface used across the
// codebase. Records are written through the shared zerolog logger.
type Level struct {
	level zerolog.Level
}

var (
	Debug = &Level{level: zerolog.DebugLevel}
	Info  = &Level{level: zerolog.InfoLevel}
	Warn  = &Level{level: zerolog.WarnLevel}
	Error = &Level{level: zerolog.ErrorLevel}
	Fatal = &Level{level: zerolog.FatalLevel}
)

var (
	mu   sync.RWMutex
	base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	file *os.File
)

// Setup points every level at a dated JSON log file under dir. When console is
// true a human readable writer on stdout is added alongside the file.
func Setup(dir string, console bool) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	name := time.Now().Format("2006-01-02") + ".log"
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	writers := []io.Writer{f}
	if console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
	}
	file = f
	base = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	return nil
}

// SetOutput replaces the destination with w. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = zerolog.New(w).With().Timestamp().Logger()
}

// Close releases the log file opened by Setup.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	return err
}

func (l *Level) emit(msg string) {
	mu.RLock()
	lg := base
	mu.RUnlock()
	// WithLevel keeps fatal from exiting here; Fatalln owns the exit.
	lg.WithLevel(l.level).Caller(2).Msg(msg)
}

func (l *Level) Println(v ...any) {
	msg := fmt.Sprintln(v...)
	l.emit(msg[:len(msg)-1])
}

func (l *Level) Printf(format string, v ...any) {
	l.emit(fmt.Sprintf(format, v...))
}

func (l *Level) Fatalln(v ...any) {
	msg := fmt.Sprintln(v...)
	l.emit(msg[:len(msg)-1])
	os.Exit(1)
}

func (l *Level) Fatalf(format string, v ...any) {
	l.emit(fmt.Sprintf(format, v...))
	os.Exit(1)
}
