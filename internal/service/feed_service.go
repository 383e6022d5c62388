package service

import (
	"context"
	"errors"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/georgetown-analytics/webfolio/internal/dto"
	"github.com/georgetown-analytics/webfolio/internal/model"
	"github.com/georgetown-analytics/webfolio/internal/repository"
)

// ErrEventNotFound 日程不存在
var ErrEventNotFound = errors.New("日程不存在")

// FeedService 日程查询与订阅服务接口
// 把全部日程渲染成 iCalendar 订阅流，供外部日历客户端订阅
type FeedService interface {
	// ListEvents 列出日程，holidaysOnly 时只看假日
	ListEvents(ctx context.Context, holidaysOnly bool) ([]dto.EventResponse, error)
	// EventGoogle 渲染单条日程的 Google Calendar API 形状
	EventGoogle(ctx context.Context, id string) (*model.GoogleEvent, error)
	// BuildFeed 渲染全量日程的 iCalendar 文本
	BuildFeed(ctx context.Context) (string, error)
}

type feedService struct {
	repo        *repository.Repository
	tz          *time.Location
	emailDomain string
	logger      *zap.Logger
}

// NewFeedService 创建 FeedService 实例
func NewFeedService(repo *repository.Repository, tz *time.Location, emailDomain string, logger *zap.Logger) FeedService {
	return &feedService{repo: repo, tz: tz, emailDomain: emailDomain, logger: logger}
}

// ListEvents 列出日程
func (s *feedService) ListEvents(ctx context.Context, holidaysOnly bool) ([]dto.EventResponse, error) {
	events, err := s.repo.Event.List(ctx, holidaysOnly)
	if err != nil {
		s.logger.Error("查询日程列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, toEventResponse(&events[i], s.tz))
	}
	return resp, nil
}

// EventGoogle 渲染单条日程的外部日历形状
func (s *feedService) EventGoogle(ctx context.Context, id string) (*model.GoogleEvent, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询日程失败", zap.String("event_id", id), zap.Error(err))
		return nil, err
	}
	return event.Google(s.tz, s.emailDomain), nil
}

// BuildFeed 渲染全量日程的 iCalendar 文本
// 假日渲染为全天事件，上课安排带起止时刻
func (s *feedService) BuildFeed(ctx context.Context) (string, error) {
	events, err := s.repo.Event.List(ctx, false)
	if err != nil {
		s.logger.Error("查询日程列表失败", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Georgetown Analytics//Webfolio//EN")

	now := time.Now()
	for i := range events {
		event := &events[i]

		e := cal.AddEvent(event.GoogleID())
		e.SetDtStampTime(now)
		e.SetSummary(event.Summary)
		if event.Location != "" {
			e.SetLocation(event.Location)
		}
		if event.Description != "" {
			e.SetDescription(event.Description)
		}

		if event.IsHoliday {
			e.SetAllDayStartAt(event.StartTime)
			// DTEND 是排他的：全天事件要到第二天零点才结束
			e.SetAllDayEndAt(event.EndTime.AddDate(0, 0, 1))
		} else {
			e.SetStartAt(event.StartTime)
			e.SetEndAt(event.EndTime)
		}
	}

	s.logger.Debug("订阅流已生成", zap.Int("events", len(events)))
	return cal.Serialize(), nil
}
