package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// 花名册 CSV 必须携带的列名
var rosterColumns = []string{
	"Semester", "Cohort", "Last Name", "First Name",
	"Course ID", "Course Title", "Effort (%)", "Hours",
	"Start Date", "End Date",
}

// ErrMissingColumn 花名册缺少必需列
var ErrMissingColumn = errors.New("花名册缺少必需列")

// AssignmentRow 花名册中的一行，所有字段均为去掉首尾空白后的原始文本
type AssignmentRow struct {
	Semester    string
	Cohort      string
	LastName    string
	FirstName   string
	CourseID    string
	CourseTitle string
	Effort      string
	Hours       string
	StartDate   string
	EndDate     string
}

// ReadAssignments 读取花名册 CSV：按表头定位各列，逐行裁剪空白
// 行序保持文件原序，导入逻辑依赖同一梯队的行连续出现
func ReadAssignments(r io.Reader) ([]AssignmentRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取花名册表头失败: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range rosterColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	field := func(record []string, name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []AssignmentRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取花名册失败: %w", err)
		}

		rows = append(rows, AssignmentRow{
			Semester:    field(record, "Semester"),
			Cohort:      field(record, "Cohort"),
			LastName:    field(record, "Last Name"),
			FirstName:   field(record, "First Name"),
			CourseID:    field(record, "Course ID"),
			CourseTitle: field(record, "Course Title"),
			Effort:      field(record, "Effort (%)"),
			Hours:       field(record, "Hours"),
			StartDate:   field(record, "Start Date"),
			EndDate:     field(record, "End Date"),
		})
	}
	return rows, nil
}
