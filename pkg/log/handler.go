package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// stacktraceHandler mirrors the stack trace carried by a cockroachdb/errors
// error attribute into a dedicated record attribute, so JSON log consumers
// see the trace without unwrapping the error themselves.
type stacktraceHandler struct {
	handler slog.Handler
}

// WithStacktraces wraps an existing slog handler. Records whose error
// attribute carries safe details gain a stacktrace attribute.
func WithStacktraces(handler slog.Handler) slog.Handler {
	return &stacktraceHandler{handler: handler}
}

func (sh *stacktraceHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return sh.handler.Enabled(ctx, l)
}

func (sh *stacktraceHandler) Handle(ctx context.Context, r slog.Record) error {
	var stacktrace string
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == ErrAttrKey {
			if err, ok := attr.Value.Any().(error); ok {
				stacktrace = extractStacktrace(err)
			}
			return false
		}
		return true
	})
	if stacktrace != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, stacktrace))
	}
	return sh.handler.Handle(ctx, r)
}

func (sh *stacktraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &stacktraceHandler{handler: sh.handler.WithAttrs(attrs)}
}

func (sh *stacktraceHandler) WithGroup(g string) slog.Handler {
	return &stacktraceHandler{handler: sh.handler.WithGroup(g)}
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
