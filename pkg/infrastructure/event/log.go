package event

import (
	log "github.com/sirupsen/logrus"

	"storefront/pkg/common/domain"
)

// LogDispatcher writes every event to the log.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) Dispatch(event domain.Event) error {
	log.WithFields(log.Fields{
		"type":  event.Type(),
		"event": event,
	}).Info("domain event")
	return nil
}
