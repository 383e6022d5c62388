package repository

import (
	"time"

	"gorm.io/gorm"
)

// whereNullableDate 为可空日期列追加等值条件：nil 匹配 NULL，非 nil 匹配具体日期
func whereNullableDate(q *gorm.DB, column string, day *time.Time) *gorm.DB {
	if day == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", day.Format("2006-01-02"))
}

// whereNullableInt 为可空整型列追加等值条件
func whereNullableInt(q *gorm.DB, column string, v *int) *gorm.DB {
	if v == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *v)
}

// whereNullableString 为可空字符串列追加等值条件
func whereNullableString(q *gorm.DB, column string, v *string) *gorm.DB {
	if v == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *v)
}
