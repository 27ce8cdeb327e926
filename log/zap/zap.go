// Package zap adapts a *zap.Logger to brewxml.Logger.
package zap

import (
	"sort"

	"go.uber.org/zap"

	"github.com/unkn0wn-root/brewxml"
)

var _ brewxml.Logger = Logger{}

// Logger forwards to L. Fields are emitted in key order; an error stored
// under "err" is emitted as zap's standard "error" field.
type Logger struct{ L *zap.Logger }

// New names l "brewxml" so codec and cache lines are easy to filter.
func New(l *zap.Logger) Logger { return Logger{L: l.Named("brewxml")} }

func (z Logger) Debug(msg string, f brewxml.Fields) { z.L.Debug(msg, fields(f)...) }
func (z Logger) Info(msg string, f brewxml.Fields)  { z.L.Info(msg, fields(f)...) }
func (z Logger) Warn(msg string, f brewxml.Fields)  { z.L.Warn(msg, fields(f)...) }
func (z Logger) Error(msg string, f brewxml.Fields) { z.L.Error(msg, fields(f)...) }

func fields(f brewxml.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		if err, ok := f[k].(error); ok && k == "err" {
			out = append(out, zap.Error(err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
