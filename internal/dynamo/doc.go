// Package dynamo provides the core primitives for integrating ordinary
// differential equations written as dX/dt = f(X).
//
// The package defines the types shared by every integrator and model:
//
//   - [TimeVector]: dense state vector tagged with the simulation time
//   - [Func]: right-hand side mapping a state to its derivative
//   - [System]: a named model exposing its right-hand side
//   - [Integrator]: drives a state to a requested end time
//   - [Observer] and [Metric]: hooks notified with every accepted state
//
// # Example
//
//	dyn := models.NewExponential()
//	integ := integrators.NewDOP54(1e-6, 0.2, 1e-12, 1.005, 0.9)
//	x := integ.IntegrateTo(1.0, dyn.Derive, dynamo.Ones(2))
//
// # Dimensions
//
// Vector arithmetic does not validate dimensions. All vectors taking part in
// one run share the dimension of the initial state; mixing dimensions is a
// caller error with an unspecified numeric result.
//
// # Thread Safety
//
// TimeVector values are safe to share once built. Integrators mutate their
// step size and counters on every call and must not be shared between
// goroutines.
package dynamo
