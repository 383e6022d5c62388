package service

import (
	"errors"
	"time"
)

// dateLayout 全站统一的日期格式
const dateLayout = "2006-01-02"

// ErrInvalidDate 日期字符串无法解析
var ErrInvalidDate = errors.New("日期格式错误，应为 YYYY-MM-DD")

// parseDate 解析日期字符串，时区锚定教学点
func parseDate(s string, tz *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, tz)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// parseOptionalDate 解析可空日期字符串，空指针与空串均返回 nil
func parseOptionalDate(s *string, tz *time.Location) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(*s, tz)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// formatDate 渲染可空日期字段
func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
