package config

import "github.com/contractlens/contractlens/internal/logging"

// ToLoggingConfig converts the logging section for logging.NewLoggerWithPath. A
// configured file switches output to that file.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	out := logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: logging.OutputStderr,
	}
	if lc.File != "" {
		out.Output = logging.OutputFile
		out.File = lc.File
	}
	return out
}
