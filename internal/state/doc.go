// Package state holds the watched list, the one piece of application state
// that outlives a session.
//
// # Overview
//
// The Store is the single owner of the list. The TUI and the CLI change it
// only through Add and Remove, and read it through Snapshot. Every change is
// written back through a persist.Value under the "watched" key of the
// underlying kv.Store, so the list on disk always matches memory after a
// successful save.
//
//	UI / CLI                 Store                      kv.Store
//	┌───────────┐   Add    ┌──────────────┐  Set(JSON) ┌──────────┐
//	│ rate + a  │─────────>│ entries      │───────────>│ "watched"│
//	│ x         │─Remove──>│ (RWMutex)    │            └──────────┘
//	│ render    │<─────────│ Snapshot()   │
//	└───────────┘  copies  └──────────────┘
//
// # Core Types
//
// Store:
//   - Owns []watched.Entry behind a sync.RWMutex
//   - Validates entries before appending (watched.Entry.Validate)
//   - A zero Store keeps the list in memory only
//
// Snapshot:
//   - Copy of the entries plus their watched.Summary
//   - LastSaved, LastError and SaveFailures describe the last write-back
//   - Degraded reports that recent changes are not on disk
//
// # Write-Back Semantics
//
//	// Save succeeds
//	store.Add(entry)
//	→ entries = entries + entry
//	→ LastError = nil, SaveFailures = 0, LastSaved = now
//
//	// Save fails
//	store.Add(entry)
//	→ entries = entries + entry   (kept in memory)
//	→ LastError = err, SaveFailures++
//	→ Add returns the wrapped error
//
// Flush retries the write-back while the store is degraded and does nothing
// otherwise. internal/app calls it from a background ticker and once more on
// shutdown.
//
// # Duplicates
//
// Add does not reject an id that is already present. Callers check Contains
// first: the TUI hides the rating control for a watched movie and the CLI
// refuses a second add. Remove deletes every entry with the given id.
//
// # Copies
//
// Snapshot clones the entry slice and the error value. Callers may keep or
// modify what they get without affecting the Store.
//
// # Usage Example
//
//	store := state.Open(kv.NewMemory())
//	if err := store.Add(entry); err != nil {
//		log.Printf("not saved: %v", err)
//	}
//	snap := store.Snapshot()
//	fmt.Println(snap.Summary.Count, snap.Summary.MeanUserRating)
//
// # Testing Considerations
//
// Open accepts any kv.Store, so tests use kv.Memory, or a type embedding it
// with a failing Set to exercise the degraded path.
package state
