package repository

import (
	"strings"

	"gorm.io/gorm"
)

// RecordSearch narrows a record query to rows whose name, model or emi
// contain search ignoring case, or whose phone or cnic contain it verbatim.
// An empty search leaves the query untouched.
func RecordSearch(search string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		search = strings.TrimSpace(search)
		if search == "" {
			return db
		}
		like := "%" + escapeLike(search) + "%"
		return db.Where(
			"name ILIKE ? OR model ILIKE ? OR emi ILIKE ? OR phone LIKE ? OR cnic LIKE ?",
			like, like, like, like, like,
		)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
