// Package database provides the durable storage for user collections.
//
// # Layout
//
// Each of the four collections (favorites, reading lists, recent searches,
// recently viewed) is stored as a JSON snapshot in one row of the
// collection_slots table, keyed by the slot name:
//
//	db, err := database.NewDatabase("./bookfinder.db", logger.Silent)
//	store := collections.NewStore(db)
//
// # Interface Implementations
//
//   - Database: implements collections.Storage
//
// Rows are upserted by key, so a rewrite of one collection never touches the
// others. There are no cross-slot transactions.
package database
