package scheduler

import "go.uber.org/zap"

// LogEnv selects which zap base configuration NewLogger builds from. This
// core has no HTTP surface to instrument, so there is no middleware here.
type LogEnv string

// Recognised log environments.
const (
	LogEnvDevelopment LogEnv = "development"
	LogEnvProduction  LogEnv = "production"
)

// NewLogger builds a zap.Logger for env. An empty env, or any value other
// than LogEnvProduction, builds a development logger. Callers that don't
// want logging at all can pass zap.NewNop() to RunOnce/RunMulti directly.
func NewLogger(env LogEnv) (*zap.Logger, error) {
	if env == LogEnvProduction {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
