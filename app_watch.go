package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/bep/debounce"

	"skinvault/internal/constants"
	"skinvault/internal/lcu"
)

var ErrConnectionLost = errors.New("lost connection to League client")

// Watch emits a fresh catalogue on start and again after each burst of inventory events.
// It returns when ctx is done or the client closes the event socket.
func (a *App) Watch(ctx context.Context, onChange func(Response)) error {
	creds, err := a.locator.Locate(ctx)
	if err != nil {
		return err
	}

	updates := make(chan struct{}, 1)
	debounced := debounce.New(constants.WatchDebounce)

	events := lcu.NewEventClient()
	events.On(lcu.InventoryEvent, func(name string, event lcu.Event) {
		a.logger.Debug().Str("uri", event.URI).Str("type", event.EventType).Msg("inventory event")
		debounced(func() {
			select {
			case updates <- struct{}{}:
			default:
			}
		})
	})

	if err := events.Connect(creds); err != nil {
		return fmt.Errorf("%w: %v", lcu.ErrRequestFailed, err)
	}
	defer events.Disconnect()

	a.logger.Info().Int("port", creds.Port).Msg("watching skin inventory")
	onChange(a.GetSkins(ctx))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-events.Done():
			return ErrConnectionLost
		case <-updates:
			onChange(a.GetSkins(ctx))
		}
	}
}
