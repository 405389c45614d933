package providers

import (
	"github.com/samber/do/v2"

	"github.com/tablematch/tablematch-server/internal/auth"
	"github.com/tablematch/tablematch-server/internal/calendar"
	"github.com/tablematch/tablematch-server/internal/config"
	"github.com/tablematch/tablematch-server/internal/logger"
	"github.com/tablematch/tablematch-server/internal/notify"
	"github.com/tablematch/tablematch-server/internal/service"
)

// ProvideNotifyGateway provides the notification gateway. The default
// implementation logs deliveries; swapping in a real SMS/email gateway is
// a matter of providing a different notify.Gateway here.
func ProvideNotifyGateway(i do.Injector) (notify.Gateway, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return notify.NewLogGateway(log.Logger), nil
}

// ProvideCalendarRenderer provides the iCalendar renderer.
func ProvideCalendarRenderer(i do.Injector) (*calendar.Renderer, error) {
	return calendar.NewRenderer(), nil
}

// ProvideReservationService provides the reservation coordinator.
func ProvideReservationService(i do.Injector) (*service.ReservationService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	gateway := do.MustInvoke[notify.Gateway](i)
	renderer := do.MustInvoke[*calendar.Renderer](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReservationService(
		storeHandle.Store,
		tokens,
		gateway,
		renderer,
		log.Logger,
		nil, // system clock
		cfg.Server.BaseURL,
	), nil
}
