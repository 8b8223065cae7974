package log

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/miruken-go/mixin"
)

const durationFormat = "15:04:05.000000" // microseconds

// Emit returns a copy of module whose methods log each
// invocation and its outcome at the given verbosity.
// The private context each method observes is unchanged.
func Emit(
	logger    logr.Logger,
	module    *mixin.Module,
	verbosity int,
) *mixin.Module {
	logger = logger.WithName(module.Name())
	builder := mixin.NewModule(module.Name())
	for _, name := range module.Names() {
		if body, _ := module.Lookup(name); body != nil {
			builder.Method(name, emit(logger.V(verbosity), name, body))
		} else {
			builder.Method(name, nil)
		}
	}
	return builder.Build()
}

func emit(
	logger logr.Logger,
	name   string,
	body   mixin.Method,
) mixin.Method {
	return func(this *mixin.Object, args ...any) (any, error) {
		if !logger.Enabled() {
			return body(this, args...)
		}
		logger.Info("calling", "method", name, "args", len(args))
		start := time.Now()
		result, err := body(this, args...)
		elapsed := formatDuration(time.Since(start))
		if err != nil {
			logger.Error(err, "failed", "method", name, "duration", elapsed)
		} else {
			logger.Info("completed", "method", name, "duration", elapsed)
		}
		return result, err
	}
}

func formatDuration(d time.Duration) string {
	return time.Time{}.Add(d).Format(durationFormat)
}
