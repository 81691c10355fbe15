package services

import (
	"strings"

	"blogapi/database"
	"blogapi/models"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern with LIKE
// wildcards in the input escaped.
func likePattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}

// matchAny restricts tx to rows where any column contains q, ignoring case.
func matchAny(tx *gorm.DB, q string, columns ...string) *gorm.DB {
	pattern := likePattern(q)
	clauses := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		clauses = append(clauses, "LOWER("+column+") LIKE ? ESCAPE '\\'")
		args = append(args, pattern)
	}
	return tx.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// listPage counts and fetches one page inside a single read transaction so
// the total always describes the same snapshot as the returned rows.
func listPage[T any](db *gorm.DB, q models.PageQuery, scope func(*gorm.DB) *gorm.DB, order string, preloads ...string) (models.Page[T], error) {
	q = q.Normalize()

	var (
		total int64
		rows  []T
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := scope(tx).Count(&total).Error; err != nil {
			return err
		}
		if total == 0 || q.Page > models.TotalPages(total, q.PageSize) {
			return nil
		}

		find := scope(tx)
		for _, preload := range preloads {
			find = find.Preload(preload)
		}
		return find.Order(order).Offset(q.Offset()).Limit(q.PageSize).Find(&rows).Error
	}, database.SnapshotTx(db))
	if err != nil {
		return models.Page[T]{}, err
	}

	return models.NewPage(rows, q, total), nil
}
