package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Ssnnee/theo-afrique-website/internal/domain"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@hourly", func() {
		result := a.gormDB.Where("expires_at < ?", time.Now()).Delete(&domain.LoginToken{})
		if result.Error != nil {
			zap.L().Error("login token purge failed", zap.Error(result.Error))
		} else if result.RowsAffected > 0 {
			zap.L().Info("purged expired login tokens", zap.Int64("count", result.RowsAffected))
		}
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		retention := a.GetSettingsInt64Value("audit", "retention_days")
		if retention <= 0 {
			retention = 365
		}
		a.gormDB.
			Where("created_at < ?", time.Now().Add(-time.Duration(retention)*24*time.Hour)).
			Delete(&domain.AdminLog{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	// Flip the kill switch on announcements whose window has fully passed.
	// Purely housekeeping: the resolver re-checks the window on every read.
	_, err = a.sched.AddFunc("@daily", func() {
		result := a.gormDB.Model(&domain.Announcement{}).
			Where("is_active = ? AND end_date < ?", true, time.Now()).
			Update("is_active", false)
		if result.Error != nil {
			zap.L().Error("announcement sweep failed", zap.Error(result.Error))
		} else if result.RowsAffected > 0 {
			zap.L().Info("deactivated ended announcements", zap.Int64("count", result.RowsAffected))
		}
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}
