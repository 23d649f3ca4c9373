// Package events carries task mutation notifications from the service layer
// to any number of sinks.
//
// The primary components are:
//   - TaskEvent: the wire shape of a notification
//   - Notifier: what the task lifecycle calls after a successful mutation
//   - Fanout: a Notifier that hands each event to a bounded worker queue and
//     never blocks the caller
//   - InMemoryEventEmitter: dispatches one event to every registered EventHandler
package events
