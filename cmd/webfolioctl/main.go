// webfolioctl 管理命令行：假日录入、批量排课、花名册导入、日历推送
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/georgetown-analytics/webfolio/config"
	"github.com/georgetown-analytics/webfolio/internal/dto"
	"github.com/georgetown-analytics/webfolio/internal/gcal"
	"github.com/georgetown-analytics/webfolio/internal/repository"
	"github.com/georgetown-analytics/webfolio/internal/service"
	"github.com/georgetown-analytics/webfolio/pkg/database"
	applogger "github.com/georgetown-analytics/webfolio/pkg/logger"
)

func main() {
	// .env 可选，缺失时直接用环境变量与配置文件
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "webfolioctl",
		Usage: "教学项目管理命令行",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "配置文件路径"},
		},
		Commands: []*cli.Command{
			holidayCommand(),
			makeEventsCommand(),
			parseAssignmentsCommand(),
			gcalCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap 加载配置、日志、数据库并组装 Service
func bootstrap(c *cli.Context) (*config.Config, *zap.Logger, *gorm.DB, *service.Service, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, logger)
	return cfg, logger, db, svc, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// holidayCommand 录入教学假日
func holidayCommand() *cli.Command {
	return &cli.Command{
		Name:      "holiday",
		Usage:     "录入教学假日（默认平移到最近的周六）",
		ArgsUsage: "DATE TITLE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-convert", Aliases: []string{"C"}, Usage: "不平移，按给定日期录入"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("用法: webfolioctl holiday DATE TITLE...")
			}

			_, logger, db, svc, err := bootstrap(c)
			if err != nil {
				return err
			}
			defer closeDB(db)
			defer logger.Sync()

			event, err := svc.Holiday.CreateHoliday(c.Context, &dto.CreateHolidayRequest{
				Date:      c.Args().First(),
				Title:     strings.Join(c.Args().Slice()[1:], " "),
				NoConvert: c.Bool("no-convert"),
			})
			if err != nil {
				return err
			}

			fmt.Printf("假日已录入: %s (%s)\n", event.Summary, event.Start)
			return nil
		},
	}
}

// makeEventsCommand 批量生成课程日程
func makeEventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "makeevents",
		Usage: "为课程批量生成日程",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "delete", Aliases: []string{"D"}, Usage: "生成前先删除全部日程"},
			&cli.StringFlag{Name: "after", Usage: "仅处理开课日期 >= after 的课程 (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "before", Usage: "仅处理开课日期 < before 的课程 (YYYY-MM-DD)"},
		},
		Action: func(c *cli.Context) error {
			_, logger, db, svc, err := bootstrap(c)
			if err != nil {
				return err
			}
			defer closeDB(db)
			defer logger.Sync()

			req := &dto.GenerateEventsRequest{Delete: c.Bool("delete")}
			if v := c.String("after"); v != "" {
				req.After = &v
			}
			if v := c.String("before"); v != "" {
				req.Before = &v
			}

			report, err := svc.Scheduler.GenerateAll(c.Context, req)
			if err != nil {
				return err
			}

			if report.Deleted > 0 {
				fmt.Printf("已删除 %d 条旧日程\n", report.Deleted)
			}
			fmt.Printf("为 %d 门课程生成 %d 条日程\n", report.Courses, report.Events)
			for msg, count := range report.Errors {
				fmt.Printf("  %d 门课程: %s\n", count, msg)
			}
			return nil
		},
	}
}

// parseAssignmentsCommand 导入花名册 CSV
func parseAssignmentsCommand() *cli.Command {
	return &cli.Command{
		Name:      "parseassignments",
		Usage:     "导入花名册 CSV，按自然键 get-or-create",
		ArgsUsage: "CSV...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("用法: webfolioctl parseassignments CSV...")
			}

			_, logger, db, svc, err := bootstrap(c)
			if err != nil {
				return err
			}
			defer closeDB(db)
			defer logger.Sync()

			for _, path := range c.Args().Slice() {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("打开 %s 失败: %w", path, err)
				}

				report, err := svc.Importer.ImportCSV(c.Context, f)
				f.Close()
				if err != nil {
					return fmt.Errorf("导入 %s 失败: %w", path, err)
				}

				fmt.Printf("%s: 新建 %d 条，命中 %d 条\n",
					path, report.TotalCreated(), report.TotalFetched())
				for kind, count := range report.Created {
					fmt.Printf("  新建 %s: %d\n", kind, count)
				}
				for _, msg := range report.Errors {
					fmt.Printf("  跳过: %s\n", msg)
				}
			}
			return nil
		},
	}
}

// gcalCommand 外部日历授权与推送
func gcalCommand() *cli.Command {
	return &cli.Command{
		Name:  "gcal",
		Usage: "Google Calendar 授权与课程日程推送",
		Subcommands: []*cli.Command{
			{
				Name:  "authorize",
				Usage: "走 OAuth 授权流并保存令牌",
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return fmt.Errorf("加载配置失败: %w", err)
					}

					oauthCfg, err := gcal.LoadOAuthConfig(cfg.Google.Credentials)
					if err != nil {
						return err
					}

					authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
					fmt.Printf("在浏览器中打开以下链接并粘贴授权码:\n%v\n", authURL)
					fmt.Print("授权码: ")

					reader := bufio.NewReader(os.Stdin)
					authCode, _ := reader.ReadString('\n')
					authCode = strings.TrimSpace(authCode)

					token, err := gcal.Exchange(c.Context, oauthCfg, authCode)
					if err != nil {
						return err
					}
					if err := gcal.SaveToken(cfg.Google.Token, token); err != nil {
						return err
					}

					fmt.Printf("令牌已保存: %s\n", cfg.Google.Token)
					return nil
				},
			},
			{
				Name:  "sync",
				Usage: "把教员未来课程的日程推送到 Google Calendar",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "netid", Required: true, Usage: "教员 netid"},
					&cli.StringFlag{Name: "credentials", Usage: "OAuth 凭据 JSON 路径（默认取配置）"},
					&cli.StringFlag{Name: "token", Usage: "授权令牌 JSON 路径（默认取配置）"},
					&cli.StringFlag{Name: "calendar", Usage: "目标日历 ID（默认取配置）"},
				},
				Action: func(c *cli.Context) error {
					cfg, logger, db, svc, err := bootstrap(c)
					if err != nil {
						return err
					}
					defer closeDB(db)
					defer logger.Sync()

					credentials := cfg.Google.Credentials
					if v := c.String("credentials"); v != "" {
						credentials = v
					}
					token := cfg.Google.Token
					if v := c.String("token"); v != "" {
						token = v
					}
					calendarID := cfg.Google.CalendarID
					if v := c.String("calendar"); v != "" {
						calendarID = v
					}

					client, err := gcal.NewClient(c.Context, credentials, token, calendarID, logger)
					if err != nil {
						return err
					}

					report, err := svc.Gcal.SyncFaculty(c.Context, c.String("netid"), client)
					if err != nil {
						return err
					}

					fmt.Printf("%s: %d 门课程共推送 %d 条日程\n",
						report.Faculty, report.Courses, report.Events)
					for _, code := range report.Skipped {
						fmt.Printf("  %s 未排课，已跳过（先执行 makeevents）\n", code)
					}
					return nil
				},
			},
		},
	}
}
