// internal/state/doc.go

// Package state provides file-backed persistence for sessions,
// transcripts, and tasks. Sessions live in a single JSON index,
// transcripts in append-only JSONL files per session, and tasks in one
// JSON file. All writes to whole files are atomic (temp file + rename).
package state
