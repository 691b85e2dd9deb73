// Package sqlite implements the store interfaces over a relational database
// through GORM. SQLite is the default backend; Postgres can be selected via
// configuration. The schema is owned by embedded goose migrations, applied
// when the database is opened.
//
// Change streams are implemented with an in-process event emitter: every
// committed write publishes a ChangeEvent, and each watch re-runs its query
// and emits a fresh snapshot whenever a relevant event arrives.
package sqlite
