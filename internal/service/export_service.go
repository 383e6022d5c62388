package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/georgetown-analytics/webfolio/internal/model"
	"github.com/georgetown-analytics/webfolio/internal/repository"
)

// ErrNothingToExport 梯队没有课程可导出
var ErrNothingToExport = errors.New("梯队没有课程，无内容可导出")

// ExportService 梯队课表导出服务接口
type ExportService interface {
	// ExportCohortSchedule 把梯队课表导出为 xlsx 工作簿，返回工作簿与建议文件名
	ExportCohortSchedule(ctx context.Context, cohortNumber int) (*excelize.File, string, error)
}

type exportService struct {
	repo        *repository.Repository
	emailDomain string
	logger      *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, emailDomain string, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, emailDomain: emailDomain, logger: logger}
}

// 课表工作簿的列头
var scheduleColumns = []string{
	"Course ID", "Section", "Title", "Hours", "Start Date", "End Date", "Instructors",
}

// ExportCohortSchedule 导出梯队课表
func (s *exportService) ExportCohortSchedule(ctx context.Context, cohortNumber int) (*excelize.File, string, error) {
	cohort, err := s.repo.Cohort.GetByNumber(ctx, cohortNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrCohortNotFound
		}
		s.logger.Error("查询梯队失败", zap.Int("cohort", cohortNumber), zap.Error(err))
		return nil, "", err
	}

	courses, err := s.repo.Course.ListByCohort(ctx, cohort.CohortID)
	if err != nil {
		s.logger.Error("查询梯队课程失败", zap.Int("cohort", cohortNumber), zap.Error(err))
		return nil, "", err
	}
	if len(courses) == 0 {
		return nil, "", ErrNothingToExport
	}

	f := excelize.NewFile()
	sheet := fmt.Sprintf("Cohort %d", cohort.Cohort)
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", err
	}
	for i, name := range scheduleColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, "", err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(scheduleColumns), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, "", err
	}

	for i := range courses {
		if err := s.writeCourseRow(ctx, f, sheet, i+2, &courses[i]); err != nil {
			return nil, "", err
		}
	}

	// 让标题和教员名单列宽一点
	_ = f.SetColWidth(sheet, "C", "C", 40)
	_ = f.SetColWidth(sheet, "G", "G", 40)

	filename := fmt.Sprintf("cohort-%d-schedule.xlsx", cohort.Cohort)
	s.logger.Info("课表已导出", zap.Int("cohort", cohort.Cohort), zap.Int("courses", len(courses)))
	return f, filename, nil
}

// writeCourseRow 写入一门课程的课表行
func (s *exportService) writeCourseRow(ctx context.Context, f *excelize.File, sheet string, row int, course *model.Course) error {
	instructors, err := s.repo.Course.Instructors(ctx, course.CoursePK)
	if err != nil {
		s.logger.Error("查询任课教员失败", zap.String("course_pk", course.CoursePK), zap.Error(err))
		return err
	}
	names := make([]string, 0, len(instructors))
	for i := range instructors {
		names = append(names, instructors[i].FullName())
	}

	values := []interface{}{
		course.CourseID,
		course.Section,
		course.Title,
		course.Hours,
		"",
		"",
		strings.Join(names, "; "),
	}
	if course.StartDate != nil {
		values[4] = course.StartDate.Format(dateLayout)
	}
	if course.EndDate != nil {
		values[5] = course.EndDate.Format(dateLayout)
	}

	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
