// Package models maps the shop's tables with GORM. Domain types never carry
// ORM tags: each model converts with ToDomain and FromDomain, and
// repositories only ever query models.
//
// Localized text of every described entity lives in the shared descriptions
// table, keyed by (owner_type, parent_id, language_id).
package models
