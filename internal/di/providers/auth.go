package providers

import (
	"encoding/hex"

	"github.com/samber/do/v2"

	"github.com/tablematch/tablematch-server/internal/auth"
	"github.com/tablematch/tablematch-server/internal/clock"
	"github.com/tablematch/tablematch-server/internal/config"
	"github.com/tablematch/tablematch-server/internal/logger"
)

// ActionKey wraps the action-token key bytes.
type ActionKey []byte

// ProvideActionKey loads or generates the action-token key.
func ProvideActionKey(i do.Injector) (ActionKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		return nil, err
	}

	// Update config with the loaded key
	cfg.Auth.ActionTokenKey = hex.EncodeToString(key)

	log.Info("Action token key loaded",
		"action_token_ttl", cfg.Auth.ActionTokenTTL,
	)

	return ActionKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	_ = do.MustInvoke[ActionKey](i)

	return auth.NewTokenService(cfg.Auth.ActionTokenKey, cfg.Auth.ActionTokenTTL, clock.NewSystem())
}
