// Package logger provides leveled logging for Lucid CLI commands.
//
// # Verbosity Levels
//
//   - default: warnings and errors only
//   - --verbose: adds info messages
//   - --debug: adds debug messages
//
// The settings document's [developer] debug flag turns on debug output for
// the whole studio without passing flags.
//
// # Log Methods
//
//	Logger.Infof()       // Shown with --verbose or --debug
//	Logger.Debugf()      // Shown only with --debug
//	Logger.Warnf()       // Always shown, on stderr
//	Logger.Errorf()      // Always shown, on stderr
//
// Core packages never log; they return errors. Only cmd/ holds a Logger.
package logger
