package logging

import (
	"go.uber.org/zap"
)

// New returns a development logger for development and test environments and
// a JSON production logger otherwise.
func New(appEnv string) (*zap.Logger, error) {
	switch appEnv {
	case "development", "test":
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}
