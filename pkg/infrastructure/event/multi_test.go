package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/pkg/common/domain"
	"storefront/pkg/domain/model"
)

type recordingDispatcher struct {
	events []domain.Event
	err    error
}

func (d *recordingDispatcher) Dispatch(event domain.Event) error {
	d.events = append(d.events, event)
	return d.err
}

func TestMulti(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		first, second := &recordingDispatcher{}, &recordingDispatcher{}
		err := Multi{NewLogDispatcher(), first, second}.Dispatch(model.OrderDeleted{OrderID: "o1"})
		assert.NoError(t, err)
		assert.Len(t, first.events, 1)
		assert.Len(t, second.events, 1)
	})

	t.Run("Collects failures", func(t *testing.T) {
		broken := &recordingDispatcher{err: errors.New("broker down")}
		after := &recordingDispatcher{}
		err := Multi{broken, after, broken}.Dispatch(model.UserDeleted{UserID: "u1"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "2 errors occurred")
		assert.Len(t, after.events, 1)
	})
}
