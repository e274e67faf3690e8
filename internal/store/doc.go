// Package store provides the file-backed task repository for task-cli.
//
// The store owns the only live copy of the task collection for a process
// run. It is loaded once from the backing file when opened and the whole
// collection is written back after every mutation.
//
// # Guarantees
//
// Single lock:
//   - One sync.Mutex guards the collection and all file I/O
//   - Every public method holds it for its full duration, I/O included
//
// Identity:
//   - Insert assigns max(existing id)+1 (or 1) inside the same critical
//     section that appends the task, so ids are unique and increasing
//
// Durability:
//   - Every mutation rewrites the full file before returning
//   - The new content goes to a temporary file in the same directory which
//     is then renamed over the backing file, so a crash mid-write leaves the
//     previous version intact
//   - A failed write is reported as a PersistenceError; the in-memory change
//     is kept, so memory may be ahead of disk until the next successful write
//
// Loading:
//   - A missing file is an empty collection
//   - An unreadable, unparsable or schema-invalid file is logged and replaced
//     by an empty collection; opening never fails
//
// # File formats
//
// The backing file is a pretty-printed list of task records, JSON by default
// or YAML when the path ends in .yaml or .yml. Both are checked against the
// embedded CUE schema (schema.cue) before decoding.
package store
