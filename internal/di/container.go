// Package di provides dependency injection configuration for the TableMatch server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/tablematch/tablematch-server/internal/auth"
	"github.com/tablematch/tablematch-server/internal/calendar"
	"github.com/tablematch/tablematch-server/internal/config"
	"github.com/tablematch/tablematch-server/internal/di/providers"
	"github.com/tablematch/tablematch-server/internal/logger"
	"github.com/tablematch/tablematch-server/internal/notify"
	"github.com/tablematch/tablematch-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideActionKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Outbound effects
	do.Provide(injector, providers.ProvideNotifyGateway)
	do.Provide(injector, providers.ProvideCalendarRenderer)

	// Business services
	do.Provide(injector, providers.ProvideReservationService)

	// Workers
	do.Provide(injector, providers.ProvideJTIPruneJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.ActionKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[notify.Gateway](injector)
	_ = do.MustInvoke[*calendar.Renderer](injector)
	_ = do.MustInvoke[*service.ReservationService](injector)
	_ = do.MustInvoke[*providers.JTIPruneJob](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
