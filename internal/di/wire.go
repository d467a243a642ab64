//go:build wireinject
// +build wireinject

package di

import (
	"BlueBatch/pkg/config"
	"BlueBatch/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Repositories
		ProvideSource,
		ProvideSink,
		ProvideNotifier,
		ProvideHistory,

		// Use cases
		ProvideValidator,
		ProvideEmitter,
		ProvideProcessor,
		ProvideScheduler,

		// Monitoring surface
		ProvideHealthChecker,
		ProvideMonitorHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
