// Package logger provides structured logging built on zerolog.
//
// Loggers are cheap to derive: WithComponent and WithFields return new
// instances sharing the same output, so each package can tag its own logs
// without global state.
package logger
