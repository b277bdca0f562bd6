// Package flow holds the two primitives every onboarding controller is built on.
//
// A Store owns one immutable state value. Writers replace it through Update,
// readers take snapshots with State or follow every change through Subscribe.
//
// An Effects channel carries one-shot events (navigation requests, clipboard
// writes) that must not live in state. Effects are buffered until a consumer
// attaches, are delivered at most once, and the buffer is bounded: when it is
// full the oldest pending effect is discarded.
package flow
