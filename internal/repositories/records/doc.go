// Package records provides the persistence layer for punch records: a whole
// JSON array stored at one remote path, replaced atomically via
// compare-and-swap on an opaque version token.
//
// # Overview
//
// The package defines a Store interface with the two CAS primitives (Load,
// Commit) and two implementations: GitHubStore over the GitHub repository
// contents REST API, and MemoryStore for tests and local development. All
// mutations go through the retry-aware Mutate helper (or its Append
// convenience), which reloads and re-applies the transform after a version
// conflict.
//
// # Concurrency
//
// The remote object is the sole source of truth and the sole arbiter: a
// write succeeds only when its precondition token matches the object's
// current version. There are no client-side locks and no caching across
// interactions; every mutation starts from a fresh Load.
//
// Key Types
//
//   - type Store        — CAS primitives used by higher-level services
//   - type GitHubStore  — contents-API implementation (sha as version token)
//   - type MemoryStore  — in-process implementation with identical semantics
//   - func Mutate       — retry loop shared by every mutation
//   - func Append       — add exactly one record with bounded retry
//
// Typical Usage
//
//	store := records.NewGitHubStore(owner, repo, token, records.WithBranch("main"))
//	recs, sha, _ := store.Load(ctx, "pontos.json")
//	_ = records.Append(ctx, store, "pontos.json", rec)
//	_ = sha // precondition for a manual Commit
//
// See also: internal/models for the Record structure and internal/services
// for the flows the UI calls.
package records
