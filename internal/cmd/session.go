package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/trialstats/internal/analysis"
	"github.com/harrison/trialstats/internal/config"
	"github.com/harrison/trialstats/internal/logger"
	"github.com/harrison/trialstats/internal/models"
	"github.com/harrison/trialstats/internal/output"
)

// runLogger is implemented by both the console and the file logger
type runLogger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogOutputSaved(path string)
	LogSummary(summary models.RunSummary)
}

// multiLogger fans every call out to all loggers
type multiLogger struct {
	loggers []runLogger
}

// LogTrace forwards to all loggers
func (ml *multiLogger) LogTrace(message string) {
	for _, l := range ml.loggers {
		l.LogTrace(message)
	}
}

// LogDebug forwards to all loggers
func (ml *multiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

// LogInfo forwards to all loggers
func (ml *multiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		l.LogInfo(message)
	}
}

// LogWarn forwards to all loggers
func (ml *multiLogger) LogWarn(message string) {
	for _, l := range ml.loggers {
		l.LogWarn(message)
	}
}

// LogError forwards to all loggers
func (ml *multiLogger) LogError(message string) {
	for _, l := range ml.loggers {
		l.LogError(message)
	}
}

// LogOutputSaved forwards to all loggers
func (ml *multiLogger) LogOutputSaved(path string) {
	for _, l := range ml.loggers {
		l.LogOutputSaved(path)
	}
}

// LogSummary forwards to all loggers
func (ml *multiLogger) LogSummary(summary models.RunSummary) {
	for _, l := range ml.loggers {
		l.LogSummary(summary)
	}
}

// session holds what every subcommand needs: merged configuration and the
// loggers for this run.
type session struct {
	cfg     *config.Config
	log     *multiLogger
	fileLog *logger.FileLogger
	started time.Time
}

// newSession loads configuration, applies the common flags and opens the
// loggers. The caller must call close.
func newSession(cmd *cobra.Command) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.MergeWithFlags(changedString(cmd, "log-level"), changedString(cmd, "log-dir"), changedString(cmd, "out-dir"))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &session{
		cfg:     cfg,
		log:     &multiLogger{loggers: []runLogger{logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)}},
		started: time.Now(),
	}
	if cfg.LogDir != "" {
		s.fileLog, err = logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to create file logger: %w", err)
		}
		s.log.loggers = append(s.log.loggers, s.fileLog)
		s.log.LogDebug(fmt.Sprintf("Run log: %s (run id %s)", s.fileLog.RunFile(), s.fileLog.RunID()))
	}
	s.log.LogTrace(fmt.Sprintf("Configuration: output_dir=%s log_level=%s", cfg.OutputDir, cfg.LogLevel))

	return s, nil
}

// changedString returns the flag's value when it was set on the command
// line, nil otherwise.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// finish writes the result's files and logs the run summary.
func (s *session) finish(task string, result *analysis.Result) error {
	writer := output.NewWriter(s.cfg.OutputDir)
	paths, err := writer.WriteAll(result.Files)
	for _, p := range paths {
		s.log.LogOutputSaved(p)
	}
	if err != nil {
		s.log.LogError(err.Error())
		return fmt.Errorf("failed to write outputs: %w", err)
	}

	s.log.LogSummary(models.RunSummary{
		Task:         task,
		Subject:      result.Subject,
		Trials:       result.Trials,
		SkippedLines: result.SkippedLines,
		Warnings:     result.Warnings,
		Outputs:      paths,
		Duration:     time.Since(s.started),
	})
	s.log.LogInfo("Completed.")
	return nil
}

// fail logs err at ERROR level and returns it.
func (s *session) fail(err error) error {
	s.log.LogError(err.Error())
	return err
}

// close releases the run log, if any.
func (s *session) close() {
	if s.fileLog != nil {
		s.fileLog.Close()
	}
}
