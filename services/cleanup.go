// file: services/cleanup.go
package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SetupCron schedules housekeeping jobs. The caller owns Start and Stop.
func SetupCron(spec string, reservations *ReservationService, retention time.Duration, loc *time.Location, log *zap.Logger) (*cron.Cron, error) {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithSeconds(), cron.WithLocation(loc))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := reservations.PurgeEnded(ctx, time.Now(), retention)
		if err != nil {
			log.Error("reservation cleanup failed", zap.Error(err))
			return
		}
		log.Info("reservation cleanup done", zap.Int64("deleted", n))
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
