package logger

import (
	"fmt"

	"github.com/jrick/logrotate/rotator"
	"github.com/mattn/go-colorable"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap logger to provide a simpler interface
type Logger struct {
	*zap.SugaredLogger
	rotator *rotator.Rotator
}

// Config holds logger configuration
type Config struct {
	Level          string
	FilePath       string // empty disables the file output
	PrintToConsole bool
	MaxRollSizeKB  int64
	MaxRolls       int
}

var global = NewNop()

// New creates a logger writing to a rotated file and optionally to stdout.
func New(config *Config) (*Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(config.Level)); err != nil {
		level.SetLevel(zapcore.InfoLevel)
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:    "msg",
		LevelKey:      "level",
		TimeKey:       "time",
		NameKey:       "logger",
		CallerKey:     "caller",
		FunctionKey:   zapcore.OmitKey,
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}

	cores := make([]zapcore.Core, 0, 2)
	var r *rotator.Rotator
	if config.FilePath != "" {
		rollSize := config.MaxRollSizeKB
		if rollSize <= 0 {
			rollSize = 10 * 1024
		}
		maxRolls := config.MaxRolls
		if maxRolls <= 0 {
			maxRolls = 3
		}
		var err error
		r, err = rotator.New(config.FilePath, rollSize, false, maxRolls)
		if err != nil {
			return nil, fmt.Errorf("failed to create file rotator: %w", err)
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(r), level))
	}
	if config.PrintToConsole {
		consoleConfig := encoderConfig
		consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.AddSync(colorable.NewColorableStdout()), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &Logger{SugaredLogger: logger.Sugar(), rotator: r}, nil
}

// NewNop creates a logger that drops everything
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// NewDefault creates a console only logger at debug level
func NewDefault() *Logger {
	logger, err := New(&Config{Level: "debug", PrintToConsole: true})
	if err != nil {
		zapLogger, _ := zap.NewProduction()
		return &Logger{SugaredLogger: zapLogger.Sugar()}
	}
	return logger
}

// With adds structured context to the logger
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...), rotator: l.rotator}
}

// Debug logs a message at debug level
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Debugw(msg, keysAndValues...)
}

// Info logs a message at info level
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Infow(msg, keysAndValues...)
}

// Warn logs a message at warn level
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Warnw(msg, keysAndValues...)
}

// Error logs a message at error level
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Errorw(msg, keysAndValues...)
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	_ = l.SugaredLogger.Sync()
	if l.rotator != nil {
		return l.rotator.Close()
	}
	return nil
}

// SetGlobal replaces the logger used by the package level functions.
func SetGlobal(l *Logger) {
	if l == nil {
		l = NewNop()
	}
	global = l
}

func L() *Logger {
	return global
}

func Debug(msg string, keysAndValues ...interface{}) {
	global.SugaredLogger.Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...interface{}) {
	global.SugaredLogger.Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	global.SugaredLogger.Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...interface{}) {
	global.SugaredLogger.Errorw(msg, keysAndValues...)
}
