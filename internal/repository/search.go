package repository

import (
	"database/sql"
	"strings"
)

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern turns a search term into a LIKE pattern matching any
// name containing it.  Wildcards typed by the user are matched literally;
// queries must declare ESCAPE '!' and fold case on both sides in SQL
// (LOWER(name) LIKE LOWER(?)).
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// nullString stores empty optional fields as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
