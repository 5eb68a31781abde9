package database

import (
	"fmt"

	"github.com/dialcoach/dialcoach/domain/call"
	"gorm.io/gorm"
)

// ApplyOptions builds a call.Query from the given options and applies it to
// a GORM session.
func ApplyOptions(db *gorm.DB, options ...call.Option) *gorm.DB {
	q := call.Build(options...)

	db = applyConditions(db, q)

	for _, ord := range q.Orders() {
		dir := "ASC"
		if !ord.Ascending() {
			dir = "DESC"
		}
		db = db.Order(fmt.Sprintf("%s %s", ord.Field(), dir))
	}

	if q.LimitValue() > 0 {
		db = db.Limit(q.LimitValue())
	}

	if q.OffsetValue() > 0 {
		db = db.Offset(q.OffsetValue())
	}

	return db
}

// ApplyConditions applies only WHERE conditions (no limit/offset/order) for
// COUNT queries.
func ApplyConditions(db *gorm.DB, options ...call.Option) *gorm.DB {
	return applyConditions(db, call.Build(options...))
}

func applyConditions(db *gorm.DB, q call.Query) *gorm.DB {
	for _, cond := range q.Conditions() {
		switch cond.Operator() {
		case call.OpIn:
			db = db.Where(fmt.Sprintf("%s IN ?", cond.Field()), cond.Value())
		case call.OpGreaterThan:
			db = db.Where(fmt.Sprintf("%s > ?", cond.Field()), cond.Value())
		case call.OpLessThan:
			db = db.Where(fmt.Sprintf("%s < ?", cond.Field()), cond.Value())
		default:
			db = db.Where(fmt.Sprintf("%s = ?", cond.Field()), cond.Value())
		}
	}
	return db
}
