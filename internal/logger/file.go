package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/trialstats/internal/models"
)

// FileLogger writes a timestamped per-run log file into a log directory
// and maintains a latest.log symlink pointing to the most recent run.
// Each run is tagged with a random run id so log lines can be tied back to
// the summary files of one invocation. It is thread-safe.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	runID    string
	logLevel string
	mu       sync.Mutex
}

// NewFileLoggerWithDirAndLevel creates a FileLogger in logDir.
// It creates the log directory if it doesn't exist, opens
// run-YYYYMMDD-HHMMSS.log and creates/updates the latest.log symlink.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	now := time.Now()
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", now.Format("20060102-150405")))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		runID:    uuid.New().String(),
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.writeRunLog("=== trialstats Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Run ID: %s\n", fl.runID))
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", now.Format(time.RFC3339)))

	return fl, nil
}

// RunID returns the id written in the run log header.
func (fl *FileLogger) RunID() string {
	return fl.runID
}

// RunFile returns the path of the run log.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogOutputSaved records a written output file.
func (fl *FileLogger) LogOutputSaved(path string) {
	fl.logWithLevel("INFO", "Output is saved at "+path)
}

// LogSummary writes the end-of-run summary, including every warning and
// output path.
func (fl *FileLogger) LogSummary(summary models.RunSummary) {
	var sb strings.Builder
	sb.WriteString("\n=== Summary ===\n")
	fmt.Fprintf(&sb, "Task: %s\n", summary.Task)
	fmt.Fprintf(&sb, "Subject: %s\n", summary.Subject)
	fmt.Fprintf(&sb, "Trials: %d\n", summary.Trials)
	fmt.Fprintf(&sb, "Skipped log lines: %d\n", summary.SkippedLines)
	fmt.Fprintf(&sb, "Duration: %s\n", formatDuration(summary.Duration))
	if len(summary.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&sb, "  - %s\n", w)
		}
	}
	if len(summary.Outputs) > 0 {
		sb.WriteString("Outputs:\n")
		for _, o := range summary.Outputs {
			fmt.Fprintf(&sb, "  - %s\n", o)
		}
	}
	fl.writeRunLog(sb.String())
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
	}
}
