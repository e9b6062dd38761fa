package database

import (
	"fmt"
	"strings"

	"github.com/chamberhub/bizportal/domain/repository"
	"gorm.io/gorm"
)

// ApplyOptions builds a repository.Query from the given options and applies it to a GORM session.
func ApplyOptions(db *gorm.DB, options ...repository.Option) *gorm.DB {
	q := repository.Build(options...)

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

// ApplyConditions applies only WHERE conditions (no limit/offset/order) for COUNT queries.
func ApplyConditions(db *gorm.DB, options ...repository.Option) *gorm.DB {
	return applyConditions(db, repository.Build(options...))
}

func applyConditions(db *gorm.DB, q repository.Query) *gorm.DB {
	for _, cond := range q.Conditions() {
		switch cond.Kind() {
		case repository.ConditionIn:
			db = db.Where(fmt.Sprintf("%s IN ?", cond.Field()), cond.Value())
		case repository.ConditionSearch:
			clause, args := searchClause(cond)
			db = db.Where(clause, args...)
		case repository.ConditionWhere:
			db = db.Where(cond.Field(), cond.Args()...)
		default:
			db = db.Where(fmt.Sprintf("%s = ?", cond.Field()), cond.Value())
		}
	}
	return db
}

// searchClause renders (LOWER(a) LIKE ? OR LOWER(b) LIKE ?) for a search condition.
func searchClause(cond repository.Condition) (string, []any) {
	pattern := "%" + escapeLike(strings.ToLower(fmt.Sprint(cond.Value()))) + "%"
	fields := cond.Fields()
	parts := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", f)
		args[i] = pattern
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
