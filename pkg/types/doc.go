// Package types defines the entity, field and table contracts shared by the
// frontdesk CRUD engine, its storage backend and the console pages, together
// with the standard error values those layers return.
package types
