// Package notify translates admin action names into user-facing copy and
// drives a transient notification channel. Message computation is pure and
// total; rendering goes through the Sink interface so the channel can be a
// process-wide Center in the daemon and an in-memory fake in tests.
package notify
