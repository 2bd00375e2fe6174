// Package metrics is the pluggable metrics surface for gateway adapters.
// Adapters record one observation per flow operation; the contract layer
// records nothing itself.
package metrics

import "time"

type Recorder interface {
	// IncOperation counts one flow operation on a gateway with its
	// outcome ("ok" or an error code).
	IncOperation(gateway, operation, outcome string)

	// ObserveLatency records how long a flow operation took, including
	// the provider round trip.
	ObserveLatency(gateway, operation string, duration time.Duration)
}
