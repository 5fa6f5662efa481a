// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of GORM tags; each model converts to and from its
// domain counterpart with ToDomain / FromDomain.
//
// Models carry no `default:` tags so inserts are plain INSERTs without
// RETURNING clauses; defaults live in the SQL migrations.
package models
