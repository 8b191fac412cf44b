// Package events provides the process-wide publish/subscribe bus that fans
// application events out to live dashboard streams and other in-process
// listeners. The in-memory bus is the default; a Redis-backed bus is
// available for multi-instance deployments.
package events

import "github.com/balajimuthu0107/codance/internal/models"

// Listener receives one published event. Listeners are invoked synchronously
// in registration order.
type Listener func(event models.AppEvent)

// Bus is the pub/sub contract. Subscribe returns an unsubscribe function that
// is idempotent and safe to call while a delivery is in flight. There is no
// replay: subscribers only see events published after they subscribe.
type Bus interface {
	Publish(event models.AppEvent)
	Subscribe(fn Listener) (unsubscribe func())
	Close() error
}
