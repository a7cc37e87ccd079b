// Package delivery defines the contract every transport implementation fulfils.
package delivery

import "context"

// Delivery is a serving surface of the application, started at boot and
// stopped through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
