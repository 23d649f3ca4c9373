// Package service contains the application use cases: the task lifecycle and
// query engine, the guarded task and user operations exposed to the API, and
// login.
//
// Services depend on the store interfaces and on events.Notifier, never on a
// concrete database or transport. Every error they return either matches one
// of the domain sentinels via errors.Is or is an unexpected failure.
package service
