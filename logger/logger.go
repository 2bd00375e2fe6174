// Package logger is the pluggable logging surface for gateway adapters.
// The contract layer itself never logs; adapters take a Logger and default
// to NoopLogger so embedding the library forces no backend on anyone.
//
// Fields holding secure wrappers are safe by construction: their default
// rendering is the tier-masked view. Redact exists for the raw strings that
// never made it into a wrapper.
package logger

type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type NoopLogger struct{}

func (NoopLogger) Debug(string, map[string]any) {}
func (NoopLogger) Info(string, map[string]any)  {}
func (NoopLogger) Warn(string, map[string]any)  {}
func (NoopLogger) Error(string, map[string]any) {}
