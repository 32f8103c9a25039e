// Package store defines the persistence interface for reactions,
// takes, votes, and power rankings, with four interchangeable
// backends behind it.
//
// The Store interface is the only surface the handlers see. Open
// selects a backend once at startup from the parsed configuration
// and the choice never changes for the lifetime of the process:
//
//   - postgres: shared relational backend (lib/pq)
//   - dynamo:   shared document backend (AWS SDK v2)
//   - sqlite:   single-node file-backed SQL (modernc.org/sqlite)
//   - local:    sqlite with shared features degraded
//
// All backends implement the same toggle semantics. A reaction
// toggle inserts when absent and deletes when present, keyed by
// (target, emoji, user). A vote toggle is three-way per (take, user):
// casting the held side removes it, casting the other side switches
// it, and at most one vote per pair ever exists. Rankings are full
// overwrites.
//
// The local backend persists takes and rankings to its file but
// degrades the shared social features: reactions and votes read
// empty and accept writes as no-ops, and Ready reports false so
// handlers can label responses accordingly.
package store
