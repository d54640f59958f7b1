package logger

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

const maxBufferSize = 1000

type Kind string

const (
	KindInfo      Kind = "INFO"
	KindError     Kind = "ERROR"
	KindFileOpen  Kind = "FILE_OPEN"
	KindFileWrite Kind = "FILE_WRITE"
	KindHTTP      Kind = "HTTP"
)

var (
	instance *Logger
	once     sync.Once
	initMu   sync.Mutex
)

type LogEntry struct {
	Timestamp time.Time
	Kind      Kind
	Message   string
}

func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

type Logger struct {
	file   *os.File
	logger *log.Logger
	mu     sync.Mutex
	buffer []LogEntry
}

// Init opens the file sink. An empty path keeps logging in memory only.
func Init(logPath string) error {
	var initErr error
	once.Do(func() {
		if logPath == "" {
			return
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			initErr = fmt.Errorf("failed to open log file: %w", err)
			return
		}

		l := get()
		l.mu.Lock()
		l.file = file
		l.logger = log.New(file, "", log.LstdFlags)
		l.mu.Unlock()
	})
	return initErr
}

func newLogger() *Logger {
	return &Logger{buffer: make([]LogEntry, 0, maxBufferSize)}
}

func get() *Logger {
	initMu.Lock()
	defer initMu.Unlock()
	if instance == nil {
		instance = newLogger()
	}
	return instance
}

func Close() error {
	l := get()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.logger = nil
	return err
}

func (l *Logger) write(kind Kind, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := LogEntry{
		Timestamp: time.Now(),
		Kind:      kind,
		Message:   message,
	}

	if len(l.buffer) >= maxBufferSize {
		l.buffer = l.buffer[1:]
	}
	l.buffer = append(l.buffer, entry)

	if l.logger != nil {
		l.logger.Println(entry.String())
	}
}

func GetLogs() []LogEntry {
	l := get()
	l.mu.Lock()
	defer l.mu.Unlock()

	logs := make([]LogEntry, len(l.buffer))
	copy(logs, l.buffer)
	return logs
}

func LogFileOpen(path string) {
	get().write(KindFileOpen, path)
}

func LogFileWrite(path string) {
	get().write(KindFileWrite, path)
}

func LogError(operation, target string, err error) {
	get().write(KindError, fmt.Sprintf("%s: %s - %v", operation, target, err))
}

func LogHTTP(message string, args ...interface{}) {
	get().write(KindHTTP, fmt.Sprintf(message, args...))
}

func Log(message string, args ...interface{}) {
	get().write(KindInfo, fmt.Sprintf(message, args...))
}
