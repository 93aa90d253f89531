// file: repos/reservation_repo.go
package repos

import (
	"context"
	"time"

	"MYR/models"
	"MYR/services"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReservationRepo struct {
	db *gorm.DB
	lg *zap.Logger
}

func NewReservationRepo(db *gorm.DB, lg *zap.Logger) *ReservationRepo {
	return &ReservationRepo{db: db, lg: lg}
}

// SeedInstruments inserts the catalog only into an empty table and reports how many
// rows were written.
func (r *ReservationRepo) SeedInstruments(ctx context.Context, instruments []models.Instrument) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Instrument{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 || len(instruments) == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).Create(&instruments).Error; err != nil {
		return 0, err
	}
	return len(instruments), nil
}

func (r *ReservationRepo) Instrument(ctx context.Context, code string) (*models.Instrument, error) {
	var inst models.Instrument
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&inst).Error; err != nil {
		return nil, notFound(err)
	}
	return &inst, nil
}

func (r *ReservationRepo) InstrumentsBySession(ctx context.Context, session models.UserSession) ([]models.Instrument, error) {
	var out []models.Instrument
	err := r.db.WithContext(ctx).Where("session = ?", session).Order("id asc").Find(&out).Error
	return out, err
}

// ToggleInstrument flips is_available and returns the new state.
func (r *ReservationRepo) ToggleInstrument(ctx context.Context, code string) (bool, error) {
	var available bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inst models.Instrument
		if err := tx.Where("code = ?", code).First(&inst).Error; err != nil {
			return err
		}
		available = !inst.IsAvailable
		return tx.Model(&inst).Update("is_available", available).Error
	})
	if err != nil {
		return false, notFound(err)
	}
	return available, nil
}

// CreateReservation checks for an overlapping booking and inserts in the same
// transaction.
func (r *ReservationRepo) CreateReservation(ctx context.Context, res *models.InstrumentReservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var clash int64
		err := tx.Model(&models.InstrumentReservation{}).
			Where("item_code = ? AND start_at < ? AND end_at > ?", res.ItemCode, res.EndAt, res.StartAt).
			Count(&clash).Error
		if err != nil {
			return err
		}
		if clash > 0 {
			return services.ErrConflict
		}
		return tx.Omit("User").Create(res).Error
	})
}

func (r *ReservationRepo) ReservationsFor(ctx context.Context, codes []string) ([]models.InstrumentReservation, error) {
	var out []models.InstrumentReservation
	if len(codes) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("item_code IN ?", codes).
		Preload("User").
		Order("start_at asc").
		Find(&out).Error
	return out, err
}

// DeleteEndedBefore purges reservations whose end is older than cutoff.
func (r *ReservationRepo) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("end_at < ?", cutoff).Delete(&models.InstrumentReservation{})
	return res.RowsAffected, res.Error
}
