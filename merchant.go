// Package merchant defines the capability contracts between payment clients
// and gateway adapters.
//
// The interface set is segregated by payment-flow shape (immediate, deferred,
// external) and by optional capability (refund, cancel, adjust, recover,
// tokenize, 3-D Secure), so an adapter's implemented-interface set exactly
// documents what its provider supports. Incompatible payment-method and flow
// combinations do not compile.
//
// Two rules hold everywhere:
//
// Interface determinism: a gateway implementing an interface supports every
// method of that interface unconditionally. Capability absence is expressed
// by not implementing the interface, never by a stub returning an
// "unsupported" error at runtime.
//
// Static binding: each gateway fixes its type parameters (payment method,
// distribution mode, installment mode, capture mode, authorization-change
// model) once, at compile time. Witness methods pin the bindings
// structurally: a type can declare a method of a given name only once, so
// two contradictory bindings cannot coexist on one adapter.
//
// The package performs no network I/O, no retries, and no scheduling. Flow
// methods take a context whose only suspension point is inside the adapter.
package merchant

import (
	"github.com/finbridge/merchant/types"
)

// Gateway is the root contract every adapter implements. It binds the
// cross-cutting slots that multiple flows must agree on: the
// amount-distribution mode and the installment mode. Bindings are fixed for
// the life of the implementing type.
//
// Gateway values must be safe for concurrent use; all flow methods take the
// receiver by value or pointer without requiring external locking.
type Gateway[D types.DistributionMode, I types.InstallmentsMode] interface {
	// Name identifies the adapter, e.g. for log and metric labels.
	Name() string

	// Distribution witnesses the distribution-mode binding.
	Distribution() D

	// InstallmentPlans witnesses the installment-mode binding.
	InstallmentPlans() I
}
