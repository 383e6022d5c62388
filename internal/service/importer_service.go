package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/georgetown-analytics/webfolio/internal/dto"
	"github.com/georgetown-analytics/webfolio/internal/model"
	"github.com/georgetown-analytics/webfolio/internal/repository"
)

// 花名册导入相关业务错误，均为行级错误：记录后跳过继续
var (
	ErrUnknownRole            = errors.New("无法识别的顾问角色")
	ErrInconsistentCourseData = errors.New("同一课程的行数据不一致")
	ErrMissingFacultyName     = errors.New("行缺少教员姓名")
	ErrBadCohortRows          = errors.New("梯队行数据无法解析")
)

// ImportRecord 导入过程产出的一条结果：一条实体记录或一条行级错误
type ImportRecord struct {
	Kind    string // Cohort | Course | Faculty | Assignment
	Display string
	Created bool
	Err     error
}

// ImporterService 花名册导入服务接口
// 逐梯队、逐课程做 get-or-create，重复导入同一份花名册不产生新记录
type ImporterService interface {
	// ImportAssignments 导入花名册行，返回逐条结果；
	// 返回的 error 仅代表基础设施故障，行级错误都在结果里
	ImportAssignments(ctx context.Context, rows []AssignmentRow) ([]ImportRecord, error)
	// ImportCSV 读取并导入花名册 CSV，汇总为统计报告
	ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportReport, error)
}

type importerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewImporterService 创建 ImporterService 实例
func NewImporterService(repo *repository.Repository, logger *zap.Logger) ImporterService {
	return &importerService{repo: repo, logger: logger}
}

// ImportCSV 读取并导入花名册 CSV
func (s *importerService) ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportReport, error) {
	rows, err := ReadAssignments(r)
	if err != nil {
		return nil, err
	}

	records, err := s.ImportAssignments(ctx, rows)
	if err != nil {
		return nil, err
	}

	report := BuildImportReport(records)
	s.logger.Info("花名册导入完成",
		zap.Int("rows", len(rows)),
		zap.Int("created", report.TotalCreated()),
		zap.Int("fetched", report.TotalFetched()),
		zap.Int("errors", len(report.Errors)))
	return report, nil
}

// ImportAssignments 导入花名册行
// 花名册按梯队分块书写，块内再按课程分块；这里依同样的连续分组
// 还原出梯队、课程、教员与任务，行级错误逐条记录而不中断导入
func (s *importerService) ImportAssignments(ctx context.Context, rows []AssignmentRow) ([]ImportRecord, error) {
	var records []ImportRecord

	for _, group := range groupRows(rows, func(r AssignmentRow) string { return r.Cohort }) {
		cohort, record, err := s.importCohort(ctx, group.key, group.rows)
		if err != nil {
			return records, err
		}
		records = append(records, record)
		if record.Err != nil {
			continue // 梯队建不起来，块内其余行无从归属
		}

		for _, sub := range groupRows(group.rows, func(r AssignmentRow) string { return r.CourseID }) {
			subRecords, err := s.importCourseGroup(ctx, cohort, sub.key, sub.rows)
			if err != nil {
				return records, err
			}
			records = append(records, subRecords...)
		}
	}
	return records, nil
}

// importCohort 从梯队块的行里还原梯队并 get-or-create
// 学期取首行学期名首词前两位，起止日期取 Foundations / Applied 课程行
func (s *importerService) importCohort(ctx context.Context, key string, rows []AssignmentRow) (*model.Cohort, ImportRecord, error) {
	number, err := strconv.Atoi(key)
	if err != nil {
		return nil, errRecord("Cohort", fmt.Errorf("%w: 梯队编号 %q", ErrBadCohortRows, key)), nil
	}

	semester, err := rosterSemester(rows[0].Semester)
	if err != nil {
		return nil, errRecord("Cohort", err), nil
	}

	start, err := cohortBoundary(rows, "Foundations", func(r AssignmentRow) string { return r.StartDate })
	if err != nil {
		return nil, errRecord("Cohort", err), nil
	}
	end, err := cohortBoundary(rows, "Applied", func(r AssignmentRow) string { return r.EndDate })
	if err != nil {
		return nil, errRecord("Cohort", err), nil
	}

	cohort := model.Cohort{
		Cohort:    number,
		Semester:  semester,
		StartDate: start,
		EndDate:   end,
	}
	created, err := s.repo.Cohort.GetOrCreate(ctx, &cohort)
	if err != nil {
		s.logger.Error("梯队写入失败", zap.Int("cohort", number), zap.Error(err))
		return nil, ImportRecord{}, err
	}
	return &cohort, ImportRecord{Kind: "Cohort", Display: cohort.Display(), Created: created}, nil
}

// importCourseGroup 处理一个课程块：Course ID 为空或 "--" 的块是顾问
// 任务块，否则先还原课程再为每行建任课任务
func (s *importerService) importCourseGroup(ctx context.Context, cohort *model.Cohort, courseID string, rows []AssignmentRow) ([]ImportRecord, error) {
	var records []ImportRecord

	var course *model.Course
	if isCourseID(courseID) {
		var record ImportRecord
		var err error
		course, record, err = s.importCourse(ctx, cohort, rows)
		if err != nil {
			return records, err
		}
		records = append(records, record)
		if record.Err != nil {
			return records, nil // 课程建不起来，块内任课任务无从挂靠
		}
	}

	for _, row := range rows {
		rowRecords, err := s.importRowAssignment(ctx, cohort, course, row)
		if err != nil {
			return records, err
		}
		records = append(records, rowRecords...)
	}
	return records, nil
}

// importCourse 从课程块的行里还原课程并 get-or-create
// 学时按行累加（多行代表分段上课），起止日期取行内最早与最晚
func (s *importerService) importCourse(ctx context.Context, cohort *model.Cohort, rows []AssignmentRow) (*model.Course, ImportRecord, error) {
	for _, row := range rows[1:] {
		if row.CourseTitle != rows[0].CourseTitle || row.CourseID != rows[0].CourseID {
			return nil, errRecord("Course",
				fmt.Errorf("%w: %s", ErrInconsistentCourseData, rows[0].CourseID)), nil
		}
	}

	courseID, section, err := splitCourseID(rows[0].CourseID)
	if err != nil {
		return nil, errRecord("Course", err), nil
	}

	hours := 0
	var start, end *time.Time
	for _, row := range rows {
		h, err := rosterInt(row.Hours)
		if err != nil {
			return nil, errRecord("Course",
				fmt.Errorf("%w: %s 学时 %q", ErrInconsistentCourseData, rows[0].CourseID, row.Hours)), nil
		}
		hours += h

		rowStart, err := rosterDate(row.StartDate)
		if err != nil {
			return nil, errRecord("Course",
				fmt.Errorf("%w: %s 开课日期 %q", ErrInconsistentCourseData, rows[0].CourseID, row.StartDate)), nil
		}
		if rowStart != nil && (start == nil || rowStart.Before(*start)) {
			start = rowStart
		}

		rowEnd, err := rosterDate(row.EndDate)
		if err != nil {
			return nil, errRecord("Course",
				fmt.Errorf("%w: %s 结课日期 %q", ErrInconsistentCourseData, rows[0].CourseID, row.EndDate)), nil
		}
		if rowEnd != nil && (end == nil || rowEnd.After(*end)) {
			end = rowEnd
		}
	}

	// 全部行学时留空时按数据库默认值入库，重复导入时自然键才能命中
	if hours == 0 {
		hours = model.DefaultCourseHours
	}

	course := model.Course{
		CohortID:  cohort.CohortID,
		CourseID:  courseID,
		Section:   section,
		Title:     rows[0].CourseTitle,
		Hours:     hours,
		StartDate: start,
		EndDate:   end,
	}
	created, err := s.repo.Course.GetOrCreate(ctx, &course)
	if err != nil {
		s.logger.Error("课程写入失败", zap.String("course_id", rows[0].CourseID), zap.Error(err))
		return nil, ImportRecord{}, err
	}
	course.Cohort = cohort
	return &course, ImportRecord{Kind: "Course", Display: course.Display(), Created: created}, nil
}

// importRowAssignment 为一行建教员与任务记录
// course 为 nil 时该行是顾问任务，角色由 Course Title 映射得出
func (s *importerService) importRowAssignment(ctx context.Context, cohort *model.Cohort, course *model.Course, row AssignmentRow) ([]ImportRecord, error) {
	if missingField(row.FirstName) || missingField(row.LastName) {
		return []ImportRecord{errRecord("Faculty",
			fmt.Errorf("%w: %s (%s)", ErrMissingFacultyName, row.CourseTitle, row.Semester))}, nil
	}

	faculty, created, err := s.repo.Faculty.GetOrCreateByName(ctx, row.FirstName, row.LastName)
	if err != nil {
		s.logger.Error("教员写入失败",
			zap.String("first_name", row.FirstName),
			zap.String("last_name", row.LastName),
			zap.Error(err))
		return nil, err
	}
	records := []ImportRecord{{Kind: "Faculty", Display: faculty.FullName(), Created: created}}

	effort, err := rosterOptionalInt(row.Effort)
	if err != nil {
		records = append(records, errRecord("Assignment",
			fmt.Errorf("%w: 责任占比 %q", ErrBadCohortRows, row.Effort)))
		return records, nil
	}

	assignment := model.Assignment{
		FacultyID: faculty.FacultyID,
		Effort:    effort,
		IsPrimary: true,
	}

	if course != nil {
		assignment.CoursePK = &course.CoursePK
		assignment.Role = model.RoleInstructor
		assignment.ApplyDefaults(course, cohort)
	} else {
		role, ok := model.AdvisoryRole(row.CourseTitle)
		if !ok {
			records = append(records, errRecord("Assignment",
				fmt.Errorf("%w: %q", ErrUnknownRole, row.CourseTitle)))
			return records, nil
		}
		assignment.CohortID = cohort.CohortID
		assignment.Role = role
		hours, err := rosterOptionalInt(row.Hours)
		if err != nil {
			records = append(records, errRecord("Assignment",
				fmt.Errorf("%w: 学时 %q", ErrBadCohortRows, row.Hours)))
			return records, nil
		}
		assignment.Hours = hours
		assignment.ApplyDefaults(nil, cohort)
	}

	assignmentCreated, err := s.repo.Assignment.GetOrCreate(ctx, &assignment)
	if err != nil {
		s.logger.Error("任务写入失败", zap.String("faculty", faculty.FullName()), zap.Error(err))
		return records, err
	}
	assignment.Faculty = faculty
	assignment.Cohort = cohort
	assignment.Course = course
	records = append(records, ImportRecord{
		Kind:    "Assignment",
		Display: assignment.Display(),
		Created: assignmentCreated,
	})
	return records, nil
}

// BuildImportReport 把逐条导入结果汇总为按实体类型的统计报告
func BuildImportReport(records []ImportRecord) *dto.ImportReport {
	report := &dto.ImportReport{
		Created: make(map[string]int),
		Fetched: make(map[string]int),
	}
	for _, record := range records {
		switch {
		case record.Err != nil:
			report.Errors = append(report.Errors, record.Err.Error())
		case record.Created:
			report.Created[record.Kind]++
		default:
			report.Fetched[record.Kind]++
		}
	}
	return report
}

// ── 花名册字段解析 ──

// rowGroup 一段键值相同的连续行
type rowGroup struct {
	key  string
	rows []AssignmentRow
}

// groupRows 按键把连续的行分块；同键的行若不连续会形成多个块，
// 与花名册的书写习惯一致
func groupRows(rows []AssignmentRow, key func(AssignmentRow) string) []rowGroup {
	var groups []rowGroup
	for _, row := range rows {
		k := key(row)
		if len(groups) == 0 || groups[len(groups)-1].key != k {
			groups = append(groups, rowGroup{key: k})
		}
		groups[len(groups)-1].rows = append(groups[len(groups)-1].rows, row)
	}
	return groups
}

// isCourseID 为空或 "--" 的 Course ID 表示顾问任务行
func isCourseID(id string) bool {
	return id != "" && id != "--"
}

// missingField 花名册用 "--" 占位表示缺失
func missingField(s string) bool {
	return s == "" || s == "--"
}

// rosterSemester 花名册学期名 → 学期代码：首词前两位大写
func rosterSemester(name string) (string, error) {
	fields := strings.Fields(name)
	if len(fields) == 0 || len(fields[0]) < 2 {
		return "", fmt.Errorf("%w: 学期 %q", ErrBadCohortRows, name)
	}
	code := strings.ToUpper(fields[0][:2])
	if _, ok := model.SemesterDisplay[code]; !ok {
		return "", fmt.Errorf("%w: 学期 %q", ErrBadCohortRows, name)
	}
	return code, nil
}

// cohortBoundary 在梯队块里按课程名前缀定位边界课程并取其日期
func cohortBoundary(rows []AssignmentRow, titlePrefix string, field func(AssignmentRow) string) (*time.Time, error) {
	for _, row := range rows {
		if !strings.HasPrefix(row.CourseTitle, titlePrefix) {
			continue
		}
		day, err := rosterDate(field(row))
		if err != nil {
			return nil, fmt.Errorf("%w: %s 课程日期 %q", ErrBadCohortRows, titlePrefix, field(row))
		}
		return day, nil
	}
	return nil, fmt.Errorf("%w: 未找到 %s 课程行", ErrBadCohortRows, titlePrefix)
}

// splitCourseID 拆分花名册课程编号，如 "XBUS-500-01" → ("XBUS-500", 1)
func splitCourseID(full string) (string, int, error) {
	i := strings.LastIndex(full, "-")
	if i <= 0 || i == len(full)-1 {
		return "", 0, fmt.Errorf("%w: 课程编号 %q", ErrInconsistentCourseData, full)
	}
	section, err := strconv.Atoi(full[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("%w: 课程编号 %q", ErrInconsistentCourseData, full)
	}
	return full[:i], section, nil
}

// rosterInt 解析学时等整数字段，空白按 0 计
func rosterInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// rosterOptionalInt 解析可空整数字段
func rosterOptionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// rosterDate 解析花名册日期字段，空白返回 nil
func rosterDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// errRecord 行级错误结果
func errRecord(kind string, err error) ImportRecord {
	return ImportRecord{Kind: kind, Err: err}
}
