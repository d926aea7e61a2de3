// Package crud is the generic entity-CRUD engine behind every console page.
//
// An Engine owns an in-memory Store of entities, derives a searched, filtered
// and paginated view of it, tracks which modal is open and the form draft
// it edits, and runs create, update, delete and toggle mutations through an
// optimistic pipeline: the local store changes first, then the Remote is
// called, and the result is reported to the caller. The remote is the system
// of record; the store is a cache that Refetch replaces wholesale.
//
// Every page configures the same Engine through an Adapter (fields, search
// fields, payload transforms and remote operations).
package crud
