package logging

import (
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

type noopLogger struct{}

// NoOp returns a logger that discards every entry. It is the default binding
// when the host application does not supply a provider.
func NoOp() interfaces.Logger { return noopLogger{} }

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

type noopProvider struct{}

// NoOpProvider returns a provider whose loggers discard every entry.
func NoOpProvider() interfaces.LoggerProvider { return noopProvider{} }

func (noopProvider) GetLogger(string) interfaces.Logger { return NoOp() }
