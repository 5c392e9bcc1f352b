// File: doc.go

// Package troupe is a minimal typed actor core for Go.
//
// An actor is a plain function that owns a private mailbox of typed messages
// and communicates with the rest of the program only through actor references.
// The package defines the abstraction layer: addressing ([ActorRef]), mailbox
// construction ([MailboxFactory]), message reception ([Context], [Receiver]),
// and task execution ([Spawner]), tied together by [Launch].
//
// The execution backend is pluggable. [QueueFactory] and [GoSpawner] provide
// the default in-process backend (unbounded FIFO queues, one goroutine per
// actor). [SyncSpawner] runs bodies inline for unit tests, and [PoolSpawner]
// binds actors to a bounded execution pool.
//
// There is no supervision, no registry, and no distribution. Each launch is
// independent; failure of one actor never affects another.
package troupe
