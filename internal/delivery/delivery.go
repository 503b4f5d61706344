// Package delivery defines the entry points that drive the client.
package delivery

import "context"

// Delivery is a runnable front end. Serve blocks until the context ends or
// the delivery finishes on its own.
type Delivery interface {
	Serve(ctx context.Context) error
}
