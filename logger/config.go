package logger

import "sync"

// Config defines the logging configuration for the context it is attached to: a main logger plus
//   per-subsystem overrides and the set of subsystems allowed to also log to Main.
type Config struct {
	Main               *systemConfig
	IsText             bool
	IncludedSubSystems map[string]bool          // If true, log in main log
	SubSystems         map[string]*systemConfig // SubSystem specific loggers

	mutex sync.Mutex
}

// NewConfig creates a config logging to stderr (or, if filePath is non-empty, to that file).
//   isDevelopment lowers the minimum level to verbose; isText switches from JSON to tab-delimited
//   output.
func NewConfig(isDevelopment, isText bool, filePath string) *Config {
	main, _ := newSystemConfig(isDevelopment, isText, filePath)
	return &Config{
		Main:               &main,
		IsText:             isText,
		IncludedSubSystems: make(map[string]bool),
		SubSystems:         make(map[string]*systemConfig),
	}
}

// NewProductionConfig creates a new config with default production values.
//   Logs info level and above to stderr.
func NewProductionConfig() *Config {
	return NewConfig(false, false, "")
}

// NewProductionTextConfig is NewProductionConfig with tab-delimited text output.
func NewProductionTextConfig() *Config {
	return NewConfig(false, true, "")
}

// NewDevelopmentConfig creates a new config with default development values.
//   Logs verbose level and above to stderr.
func NewDevelopmentConfig() *Config {
	return NewConfig(true, false, "")
}

// NewDevelopmentTextConfig is NewDevelopmentConfig with tab-delimited text output.
func NewDevelopmentTextConfig() *Config {
	return NewConfig(true, true, "")
}

// NewEmptyConfig creates a new config that discards every log entry.
func NewEmptyConfig() *Config {
	main, _ := newEmptySystemConfig()
	return &Config{
		Main:               &main,
		IncludedSubSystems: make(map[string]bool),
		SubSystems:         make(map[string]*systemConfig),
	}
}

// EnableSubSystem enables a subsystem to also log to the main log.
func (config *Config) EnableSubSystem(subsystem string) {
	config.IncludedSubSystems[subsystem] = true
}

// DefaultConfig is used whenever a context has no config attached.
var DefaultConfig = NewConfig(true, false, "")

// emptyConfig is the sentinel installed by ContextWithNoLogger.
var emptyConfig = NewEmptyConfig()
