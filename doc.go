// Package gameaccounts is the record keeper of a game-account marketplace.
//
// A Market bundles one service per entity (users, games, game accounts,
// listings and transactions). Every service lists, pages, finds, creates,
// updates and deletes records through a repository, which is either a SQL
// store reached through Bun or an in-process store. Services also offer
// case-insensitive substring searches, inclusive numeric bounds and lookups
// that follow the foreign identifiers between entities.
package gameaccounts
