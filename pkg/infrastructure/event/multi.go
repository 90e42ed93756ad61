package event

import (
	"github.com/hashicorp/go-multierror"

	"storefront/pkg/common/domain"
)

// Multi hands each event to every dispatcher and joins their failures.
type Multi []domain.EventDispatcher

func (m Multi) Dispatch(event domain.Event) error {
	var result error
	for _, d := range m {
		if err := d.Dispatch(event); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}
