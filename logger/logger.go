package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Logger allows you to control logging with message levels and subsystem controls.
// The "Include" flags below select which prefix fields each log entry carries; NewConfig picks
//   them from the output mode (text or JSON).
// Subsystem log entries can be enabled per subsystem.
// For example the parent package can specify if they want to see logs from a subsystem and how
//   they want to see them.
//
// Sample Setup:
// // Create a development log config that writes to main.log instead of stderr.
// logConfig := logger.NewConfig(true, false, "./tmp/main.log")
// logConfig.EnableSubSystem(spynode.SubSystem)
//
// // Attach the log config to the context.
// ctx := logger.ContextWithLogConfig(context.Background(), logConfig)
//

type Level int

const (
	LevelDebug   Level = -2
	LevelVerbose Level = -1
	LevelInfo    Level = 0
	LevelWarn    Level = 1
	LevelError   Level = 2
	LevelFatal   Level = 3 // Calls exit
	LevelPanic   Level = 4 // Calls panic
)

// Log entry formatting (which prefix fields to include)
const (
	IncludeDate      = 0x01 // date in the local time zone: 2018/01/01
	IncludeTime      = 0x02 // time in the local time zone: 06:54:32
	IncludeMicro     = 0x04 // microseconds .123123
	IncludeCaller    = 0x08 // file name and line number
	IncludeSystem    = 0x10 // system name
	IncludeLevel     = 0x20 // level of log entry
	IncludeTimeStamp = 0x40 // unix timestamp, used instead of date/time for JSON output
)

// ContextWithLogger attaches a default config to ctx, matching the convenience constructor used
// throughout tokenized-pkg's command entry points.
func ContextWithLogger(ctx context.Context, isDevelopment, isText bool, filePath string) context.Context {
	return ContextWithLogConfig(ctx, NewConfig(isDevelopment, isText, filePath))
}

// ContextWithLogConfig returns a context with the logging config attached.
func ContextWithLogConfig(ctx context.Context, config *Config) context.Context {
	return context.WithValue(ctx, configKey, config)
}

// ContextWithNoLogger returns a context that discards every log entry.
func ContextWithNoLogger(ctx context.Context) context.Context {
	return context.WithValue(ctx, configKey, emptyConfig)
}

// ContextWithLogSubSystem returns a context with the logging subsystem attached.
func ContextWithLogSubSystem(ctx context.Context, subsystem string) context.Context {
	return context.WithValue(ctx, subSystemKey, subsystem)
}

// ContextWithOutLogSubSystem returns a context with the logging subsystem cleared. Used when a
//   context is passed back from a subsystem.
func ContextWithOutLogSubSystem(ctx context.Context) context.Context {
	return context.WithValue(ctx, subSystemKey, nil)
}

// ContextWithLogTrace returns a context carrying a trace id included in every log entry written
//   through it.
func ContextWithLogTrace(ctx context.Context, trace string) context.Context {
	return context.WithValue(ctx, traceKey, trace)
}

// ContextWithLogFields returns a context carrying fields that are included in every log entry
//   written through it, in addition to any fields passed directly to a *WithFields call. A field
//   already present on the context is not overridden by one of the same name passed later.
func ContextWithLogFields(ctx context.Context, fields ...Field) context.Context {
	existing, _ := ctx.Value(fieldsKey).([]Field)
	merged := make([]Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey, merged)
}

func contextFields(ctx context.Context) []Field {
	fields, _ := ctx.Value(fieldsKey).([]Field)
	return fields
}

// mergeFields combines context-carried fields with fields passed directly to a log call.
// Context fields take priority: a directly passed field whose name collides with one already on
// the context is dropped rather than shadowing it.
func mergeFields(ctxFields, extra []Field) []Field {
	if len(extra) == 0 {
		return ctxFields
	}

	seen := make(map[string]bool, len(ctxFields)+len(extra))
	result := make([]Field, 0, len(ctxFields)+len(extra))
	for _, f := range ctxFields {
		if seen[f.Name()] {
			continue
		}
		seen[f.Name()] = true
		result = append(result, f)
	}
	for _, f := range extra {
		if seen[f.Name()] {
			continue
		}
		seen[f.Name()] = true
		result = append(result, f)
	}
	return result
}

// Log writes a log entry at level if the attached config and subsystem allow it.
func Log(ctx context.Context, level Level, format string, values ...interface{}) error {
	return LogDepthWithFields(ctx, level, GetCaller(1), nil, format, values...)
}

// Debug adds a debug level entry to the log.
func Debug(ctx context.Context, format string, values ...interface{}) error {
	return LogDepthWithFields(ctx, LevelDebug, GetCaller(1), nil, format, values...)
}

// Verbose adds a verbose level entry to the log.
func Verbose(ctx context.Context, format string, values ...interface{}) error {
	return LogDepthWithFields(ctx, LevelVerbose, GetCaller(1), nil, format, values...)
}

// Info adds a info level entry to the log.
func Info(ctx context.Context, format string, values ...interface{}) error {
	return LogDepthWithFields(ctx, LevelInfo, GetCaller(1), nil, format, values...)
}

// Warn adds a warn level entry to the log.
func Warn(ctx context.Context, format string, values ...interface{}) error {
	return LogDepthWithFields(ctx, LevelWarn, GetCaller(1), nil, format, values...)
}

// Error adds a error level entry to the log.
func Error(ctx context.Context, format string, values ...interface{}) error {
	return LogDepthWithFields(ctx, LevelError, GetCaller(1), nil, format, values...)
}

// Fatal adds a fatal level entry to the log.
func Fatal(ctx context.Context, format string, values ...interface{}) error {
	return LogDepthWithFields(ctx, LevelFatal, GetCaller(1), nil, format, values...)
}

// Panic adds a panic level entry to the log.
func Panic(ctx context.Context, format string, values ...interface{}) error {
	return LogDepthWithFields(ctx, LevelPanic, GetCaller(1), nil, format, values...)
}

// InfoWithFields adds an info level entry carrying extra structured fields.
func InfoWithFields(ctx context.Context, fields []Field, format string, values ...interface{}) error {
	return LogDepthWithFields(ctx, LevelInfo, GetCaller(1), fields, format, values...)
}

// WarnWithFields adds a warn level entry carrying extra structured fields.
func WarnWithFields(ctx context.Context, fields []Field, format string, values ...interface{}) error {
	return LogDepthWithFields(ctx, LevelWarn, GetCaller(1), fields, format, values...)
}

// ErrorWithFields adds an error level entry carrying extra structured fields.
func ErrorWithFields(ctx context.Context, fields []Field, format string, values ...interface{}) error {
	return LogDepthWithFields(ctx, LevelError, GetCaller(1), fields, format, values...)
}

func getTrace(ctx context.Context) string {
	traceValue := ctx.Value(traceKey)
	if traceValue == nil {
		return ""
	}

	trace, ok := traceValue.(string)
	if !ok {
		return ""
	}

	return trace
}

// LogDepth writes a log entry using caller (typically the result of GetCaller at the original
//   call site) rather than recomputing it, so a wrapper function doesn't show up as the caller.
func LogDepth(ctx context.Context, level Level, caller string, format string, values ...interface{}) error {
	return LogDepthWithFields(ctx, level, caller, nil, format, values...)
}

// LogDepthWithFields is the base of every logging call in this package: it resolves the config
//   and subsystem attached to ctx, merges context-carried fields with fields, and writes one
//   entry to the main log and, if enabled, the subsystem log.
func LogDepthWithFields(ctx context.Context, level Level, caller string, fields []Field,
	format string, values ...interface{}) error {

	defer func() {
		switch level {
		case LevelFatal:
			os.Exit(1)
		case LevelPanic:
			panic(fmt.Sprintf(format, values...))
		}
	}()

	configValue := ctx.Value(configKey)
	config, ok := configValue.(*Config)
	if !ok || config == nil {
		config = DefaultConfig
	}

	if config == emptyConfig {
		return nil
	}

	allFields := mergeFields(contextFields(ctx), fields)
	if trace := getTrace(ctx); trace != "" {
		allFields = append(allFields, String("trace", trace))
	}

	config.mutex.Lock()
	defer config.mutex.Unlock()

	subsystem := "Main"
	subsystemValue := ctx.Value(subSystemKey)
	if subsystemValue != nil {
		var ok bool
		subsystem, ok = subsystemValue.(string)
		if !ok {
			return errors.New("Invalid SubSystem Type")
		}

		if subConfig, subExists := config.SubSystems[subsystem]; subExists {
			if err := subConfig.writeEntry(level, caller, allFields, format, values...); err != nil {
				return err
			}
		}

		include, includeExists := config.IncludedSubSystems[subsystem]
		if !includeExists || !include {
			return nil // Don't log to main config
		}
	}

	return config.Main.writeEntry(level, caller, allFields, format, values...)
}

// Keys for context key/pairs
type loggerkey int

const (
	configKey    loggerkey = 1
	subSystemKey loggerkey = 2
	traceKey     loggerkey = 3
	fieldsKey    loggerkey = 4
)
