package store

import (
	"strings"

	"gorm.io/gorm"

	"github.com/preston-bernstein/game-library-service/internal/domain/games"
)

const likeEscape = `\`

// searchClause compares lowercased columns so matching agrees with
// games.Query.Matches on every dialect.
const searchClause = "(LOWER(title) LIKE ? ESCAPE '" + likeEscape + "' OR LOWER(description) LIKE ? ESCAPE '" + likeEscape + "')"

// queryScope translates a catalog query into WHERE conditions joined by AND.
func queryScope(q games.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.HasSearch() {
			pattern := containsPattern(q.Search)
			db = db.Where(searchClause, pattern, pattern)
		}
		if q.HasCategory() {
			db = db.Where(games.ColumnCategory+" = ?", q.Category)
		}
		return db
	}
}

// containsPattern builds a LIKE pattern matching term literally anywhere.
func containsPattern(term string) string {
	return "%" + escapeLike(strings.ToLower(term)) + "%"
}

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

func escapeLike(term string) string {
	return likeReplacer.Replace(term)
}
