// Package gcal 封装 Google Calendar API 的写入端
// OAuth 凭据与令牌均以文件形式管理，令牌由 authorize 命令交互获取
package gcal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/georgetown-analytics/webfolio/internal/model"
)

// Client Google Calendar 写入端，实现 service.CalendarInserter
type Client struct {
	service    *calendar.Service
	calendarID string
	logger     *zap.Logger
}

// NewClient 从凭据与令牌文件构建已认证的 Google Calendar 写入端
// 令牌缺失时提示先执行授权流程
func NewClient(ctx context.Context, credentialsPath, tokenPath, calendarID string, logger *zap.Logger) (*Client, error) {
	config, err := LoadOAuthConfig(credentialsPath)
	if err != nil {
		return nil, err
	}

	token, err := tokenFromFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("读取令牌 %s 失败，请先执行 gcal authorize: %w", tokenPath, err)
	}

	client := config.Client(ctx, token)
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("创建日历客户端失败: %w", err)
	}

	return &Client{service: service, calendarID: calendarID, logger: logger}, nil
}

// Insert 写入一条事件；事件 ID 固定，已存在时改为更新，保证重复推送幂等
func (c *Client) Insert(ctx context.Context, event *model.GoogleEvent) error {
	ev := toGoogleEvent(event)

	_, err := c.service.Events.Insert(c.calendarID, ev).Context(ctx).Do()
	if err == nil {
		c.logger.Debug("事件已写入", zap.String("event_id", ev.Id), zap.String("summary", ev.Summary))
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict {
		if _, err := c.service.Events.Update(c.calendarID, ev.Id, ev).Context(ctx).Do(); err != nil {
			return fmt.Errorf("更新事件 %s 失败: %w", ev.Id, err)
		}
		c.logger.Debug("事件已更新", zap.String("event_id", ev.Id), zap.String("summary", ev.Summary))
		return nil
	}
	return fmt.Errorf("写入事件 %s 失败: %w", ev.Id, err)
}

// toGoogleEvent 把内部事件形状转成 API 客户端的事件类型
func toGoogleEvent(event *model.GoogleEvent) *calendar.Event {
	ev := &calendar.Event{
		Id:          event.ID,
		Summary:     event.Summary,
		Location:    event.Location,
		Description: event.Description,
		Start: &calendar.EventDateTime{
			Date:     event.Start.Date,
			DateTime: event.Start.DateTime,
			TimeZone: event.Start.TimeZone,
		},
		End: &calendar.EventDateTime{
			Date:     event.End.Date,
			DateTime: event.End.DateTime,
			TimeZone: event.End.TimeZone,
		},
		Reminders: &calendar.EventReminders{
			UseDefault:      event.Reminders.UseDefault,
			ForceSendFields: []string{"UseDefault"},
		},
	}

	for _, o := range event.Reminders.Overrides {
		ev.Reminders.Overrides = append(ev.Reminders.Overrides, &calendar.EventReminder{
			Method:  o.Method,
			Minutes: int64(o.Minutes),
		})
	}
	for _, a := range event.Attendees {
		ev.Attendees = append(ev.Attendees, &calendar.EventAttendee{Email: a.Email})
	}
	return ev
}

// LoadOAuthConfig 读取凭据文件并解析为 OAuth2 配置（桌面应用授权流）
func LoadOAuthConfig(credentialsPath string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("读取凭据 %s 失败: %w", credentialsPath, err)
	}

	config, err := google.ConfigFromJSON(b, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("解析凭据失败: %w", err)
	}
	config.RedirectURL = "urn:ietf:wg:oauth:2.0:oob"
	return config, nil
}

// Exchange 用授权码换取访问令牌
func Exchange(ctx context.Context, config *oauth2.Config, authCode string) (*oauth2.Token, error) {
	token, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("授权码换取令牌失败: %w", err)
	}
	return token, nil
}

// SaveToken 把令牌落盘，目录不存在时一并创建
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("创建令牌目录失败: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("创建令牌文件失败: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// tokenFromFile 从本地文件读取令牌
func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}
