/*
Package orchestrator drives artifact generation and owns the session
lifecycle.

Generate allocates a collision-resistant session id and an exclusively-owned
output directory, invokes the exporter matching the requested target kind,
and registers the session only once every artifact is finalized — readers
never observe a half-written session. Exporter failures leave nothing
behind: the partial directory is removed and no session is registered.

Generation is CPU/IO heavy and runs on the calling goroutine (each server
request already has its own), bounded by a weighted semaphore so concurrent
requests are not serialized behind one generation yet cannot pile up
without limit. There is no caller-facing cancellation of an in-flight
generation beyond context propagation into the exporters; an abandoned
client connection does not stop the work.

A session is a handle to a leaked-by-default resource: its directory is
reclaimed only by an explicit Cleanup call. There is no expiry or garbage
collection for abandoned sessions; after a process restart every directory
left under the output root is orphaned.
*/
package orchestrator
