package realtime

import (
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

// Channel is the Postgres NOTIFY channel fired by the reservations table
// trigger (see migrations/schema.sql).
const Channel = "reservations_changed"

// Listen opens a LISTEN connection on the change feed channel and relays
// every notification into the hub. The returned listener must be closed on
// shutdown.
func Listen(dsn string, hub *Hub) (*pq.Listener, error) {
	listener := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("Change feed listener event %d: %v", ev, err)
		}
	})
	if err := listener.Listen(Channel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("error listening on %s: %w", Channel, err)
	}

	go func() {
		for {
			select {
			case n, ok := <-listener.Notify:
				if !ok {
					return
				}
				// Trigger-only signal, payload ignored.
				_ = n
				hub.Broadcast()
			case <-time.After(90 * time.Second):
				go func() {
					if err := listener.Ping(); err != nil {
						log.Printf("Change feed ping failed: %v", err)
					}
				}()
			}
		}
	}()
	return listener, nil
}
