package core

// LogLevel classifies diagnostic messages.
type LogLevel uint8

const (
	LevelInfo LogLevel = iota
	LevelWarn
	LevelError
)

// LogWriter is the platform-specific diagnostic sink. On the target this
// feeds the framed logwire stream over the debug UART; on the host it is
// stdout or a test recorder. Observability only, never a functional
// interface.
type LogWriter func(level LogLevel, msg string)

var (
	logWriter LogWriter = func(LogLevel, string) {}

	// Async log output channel, drained off the hot path.
	logChan chan logEntry
)

type logEntry struct {
	level LogLevel
	msg   string
}

// SetLogWriter installs the platform log sink.
func SetLogWriter(w LogWriter) {
	logWriter = w
}

// Info emits an informational message.
func Info(msg string) { logWriter(LevelInfo, msg) }

// Warn emits a warning. Used for local, recoverable failures that are
// discarded rather than propagated.
func Warn(msg string) { logWriter(LevelWarn, msg) }

// Error emits an error message.
func Error(msg string) { logWriter(LevelError, msg) }

// InitAsyncLog starts the background drain goroutine for LogAsync. Call once
// from main after SetLogWriter.
func InitAsyncLog() {
	logChan = make(chan logEntry, 16)
	go func() {
		for e := range logChan {
			logWriter(e.level, e.msg)
		}
	}()
}

// LogAsync queues a message without blocking. Drops the message if the queue
// is full; interrupt context must never wait on the log sink.
func LogAsync(level LogLevel, msg string) {
	if logChan == nil {
		return
	}
	select {
	case logChan <- logEntry{level, msg}:
	default:
	}
}
