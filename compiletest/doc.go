// Package compiletest holds negative fixtures for the static guarantees of
// the capability interfaces. The files tagged compilefail are excluded from
// normal builds; each one demonstrates a program the type system must
// reject, and building this package with -tags compilefail is expected to
// fail on every one of them.
//
// The positive side of the contract lives in the adapter packages as
// ordinary `var _` interface assertions.
package compiletest
