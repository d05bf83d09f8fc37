package kudo

import (
	"strings"

	"gorm.io/gorm"
)

// Sort keys accepted on GET /home.
const (
	SortDate   = "date"
	SortSender = "sender"
	SortEmoji  = "emoji"
)

// authorProfileJoin exposes the author's profile to filter and sort on.
const authorProfileJoin = "JOIN profiles AS author_profile ON author_profile.user_id = kudos.author_id"

// FeedQuery is the translation of the home page's sort and filter parameters.
// Ordering and filtering are independent of each other.
type FeedQuery struct {
	Sort    string
	Filter  string
	OrderBy string
	Where   string
	Args    []interface{}
}

// NewFeedQuery builds the ORDER BY and WHERE fragments for sort and filter.
// Unknown sort keys mean no ordering; a blank filter means no condition.
// Both sides of the match are folded by the database's LOWER(), so sqlite
// connections must come from SQLiteDriverName in internal/platform/database.
func NewFeedQuery(sort, filter string) FeedQuery {
	q := FeedQuery{Filter: filter}

	switch sort {
	case SortDate:
		q.Sort, q.OrderBy = sort, "kudos.created_at DESC"
	case SortSender:
		q.Sort, q.OrderBy = sort, "author_profile.first_name ASC"
	case SortEmoji:
		q.Sort, q.OrderBy = sort, "kudos.style_emoji ASC"
	}

	// A blank filter is no filter; otherwise it matches verbatim, spaces included.
	if strings.TrimSpace(filter) != "" {
		pattern := "%" + escapeLike(filter) + "%"
		q.Where = `(LOWER(kudos.message) LIKE LOWER(?) ESCAPE '\' OR ` +
			`LOWER(author_profile.first_name) LIKE LOWER(?) ESCAPE '\' OR ` +
			`LOWER(author_profile.last_name) LIKE LOWER(?) ESCAPE '\')`
		q.Args = []interface{}{pattern, pattern, pattern}
	}
	return q
}

// Apply adds the query's conditions to db. db must already join authorProfileJoin.
func (q FeedQuery) Apply(db *gorm.DB) *gorm.DB {
	if q.Where != "" {
		db = db.Where(q.Where, q.Args...)
	}
	if q.OrderBy != "" {
		db = db.Order(q.OrderBy)
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
