// file: repos/availability_repo.go
package repos

import (
	"context"
	"errors"

	"MYR/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AvailabilityRepo backs the overlap engine with gorm.
type AvailabilityRepo struct {
	db *gorm.DB
	lg *zap.Logger
}

func NewAvailabilityRepo(db *gorm.DB, lg *zap.Logger) *AvailabilityRepo {
	return &AvailabilityRepo{db: db, lg: lg}
}

func (r *AvailabilityRepo) TeamExists(ctx context.Context, teamID uint32) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Team{}).Where("id = ?", teamID).Count(&count).Error
	return count > 0, err
}

func (r *AvailabilityRepo) TeamMembers(ctx context.Context, teamID uint32) ([]uint32, error) {
	var ids []uint32
	err := r.db.WithContext(ctx).Model(&models.TeamMember{}).
		Where("team_id = ?", teamID).
		Order("user_id asc").
		Pluck("user_id", &ids).Error
	return ids, err
}

// Availability treats a row that fails to parse like a missing schedule and logs it;
// one bad row must not take the whole team view down.
func (r *AvailabilityRepo) Availability(ctx context.Context, userID uint32) (models.WeeklyAvailability, bool, error) {
	var user models.User
	err := r.db.WithContext(ctx).Select("id", "schedule_json").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if user.ScheduleJSON == "" {
		return nil, false, nil
	}
	avail, err := models.ParseWeeklyAvailability(user.ScheduleJSON)
	if err != nil {
		r.lg.Warn("skipping unreadable availability", zap.Uint32("user_id", userID), zap.Error(err))
		return nil, false, nil
	}
	return avail, true, nil
}

func (r *AvailabilityRepo) ConfirmedSlots(ctx context.Context, teamID uint32) ([]models.Slot, error) {
	var rows []models.ConfirmedSlot
	if err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Find(&rows).Error; err != nil {
		return nil, err
	}
	slots := make([]models.Slot, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, row.Slot())
	}
	return slots, nil
}

func (r *AvailabilityRepo) OtherTeams(ctx context.Context, userID, excludeTeamID uint32) ([]uint32, error) {
	var ids []uint32
	err := r.db.WithContext(ctx).Model(&models.TeamMember{}).
		Where("user_id = ? AND team_id <> ?", userID, excludeTeamID).
		Pluck("team_id", &ids).Error
	return ids, err
}

// InsertConfirmedSlots relies on the (team_id, day, slot_index) unique index: rows
// that already exist, including ones a concurrent request just wrote, are skipped.
func (r *AvailabilityRepo) InsertConfirmedSlots(ctx context.Context, teamID uint32, slots []models.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	rows := make([]models.ConfirmedSlot, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, models.ConfirmedSlot{TeamID: teamID, Day: s.Day, SlotIndex: s.Index})
	}

	var created int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}, {Name: "day"}, {Name: "slot_index"}},
			DoNothing: true,
		}).Create(&rows)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(created), nil
}

func (r *AvailabilityRepo) DeleteConfirmedSlot(ctx context.Context, teamID uint32, slot models.Slot) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("team_id = ? AND day = ? AND slot_index = ?", teamID, slot.Day, slot.Index).
		Delete(&models.ConfirmedSlot{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
