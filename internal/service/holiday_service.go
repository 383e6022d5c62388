package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/georgetown-analytics/webfolio/internal/dto"
	"github.com/georgetown-analytics/webfolio/internal/model"
	"github.com/georgetown-analytics/webfolio/internal/repository"
)

// ErrHolidayExists 目标日期已有假日
var ErrHolidayExists = errors.New("该日期已有教学假日")

// HolidayService 教学假日服务接口
// 上课都在周末，假日默认平移到最近的周六才会真正停课
type HolidayService interface {
	CreateHoliday(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.EventResponse, error)
}

type holidayService struct {
	repo   *repository.Repository
	tz     *time.Location
	logger *zap.Logger
}

// NewHolidayService 创建 HolidayService 实例
func NewHolidayService(repo *repository.Repository, tz *time.Location, logger *zap.Logger) HolidayService {
	return &holidayService{repo: repo, tz: tz, logger: logger}
}

// CreateHoliday 录入教学假日（全天事件）
// 除非 NoConvert，假日日期先平移到最近的周六；同一天重复录入直接拒绝
func (s *holidayService) CreateHoliday(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.EventResponse, error) {
	day, err := parseDate(req.Date, s.tz)
	if err != nil {
		return nil, err
	}

	day = NearestSaturday(day, !req.NoConvert)

	exists, err := s.repo.Event.HolidayExistsOn(ctx, day)
	if err != nil {
		s.logger.Error("查询假日失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrHolidayExists
	}

	event := model.CalendarEvent{
		EventID:   uuid.NewString(),
		Summary:   req.Title,
		StartTime: day,
		EndTime:   day,
		IsHoliday: true,
	}
	if err := s.repo.Event.Create(ctx, &event); err != nil {
		s.logger.Error("写入假日失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("假日已录入",
		zap.String("title", req.Title),
		zap.String("date", day.Format(dateLayout)))

	resp := toEventResponse(&event, s.tz)
	return &resp, nil
}

// NearestSaturday 把日期平移到最近的周六；convert 为 false 时原样返回
// 周日到周二回退到上一个周六（长周末假日通常已经影响了前一天的课），
// 周三到周五顺延到下一个周六，周六不动
func NearestSaturday(day time.Time, convert bool) time.Time {
	if !convert {
		return day
	}

	switch day.Weekday() {
	case time.Sunday:
		return day.AddDate(0, 0, -1)
	case time.Monday:
		return day.AddDate(0, 0, -2)
	case time.Tuesday:
		return day.AddDate(0, 0, -3)
	case time.Wednesday:
		return day.AddDate(0, 0, 3)
	case time.Thursday:
		return day.AddDate(0, 0, 2)
	case time.Friday:
		return day.AddDate(0, 0, 1)
	default: // 周六
		return day
	}
}
