package service

import (
	log "github.com/sirupsen/logrus"

	"storefront/pkg/common/domain"
)

func dispatch(dispatcher domain.EventDispatcher, event domain.Event) {
	if err := dispatcher.Dispatch(event); err != nil {
		log.WithError(err).WithField("event", event.Type()).Error("failed to dispatch event")
	}
}
