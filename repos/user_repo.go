// file: repos/user_repo.go
package repos

import (
	"context"
	"fmt"

	"MYR/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo struct {
	db *gorm.DB
	lg *zap.Logger
}

func NewUserRepo(db *gorm.DB, lg *zap.Logger) *UserRepo {
	return &UserRepo{db: db, lg: lg}
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepo) GetByID(ctx context.Context, userID uint32) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepo) SearchByName(ctx context.Context, query string, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+query+"%").
		Order("id asc").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepo) UpdateRole(ctx context.Context, userID uint32, role models.UserRole) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// MySQL reports 0 rows when the role was already set.
	if _, err := r.GetByID(ctx, userID); err != nil {
		return err
	}
	return nil
}

// UpdateSchedule reads the stored availability, applies fn and writes the result in
// one transaction. The row stays locked in between so concurrent saves of different
// days both survive.
func (r *UserRepo) UpdateSchedule(ctx context.Context, userID uint32, fn func(models.WeeklyAvailability) models.WeeklyAvailability) (models.WeeklyAvailability, error) {
	var out models.WeeklyAvailability
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id", "schedule_json").First(&user, userID).Error; err != nil {
			return err
		}
		current, err := models.ParseWeeklyAvailability(user.ScheduleJSON)
		if err != nil {
			r.lg.Warn("replacing unreadable availability", zap.Uint32("user_id", userID), zap.Error(err))
			current = models.WeeklyAvailability{}
		}
		out = fn(current)
		text, err := out.Serialize()
		if err != nil {
			return fmt.Errorf("encode availability: %w", err)
		}
		// UpdateColumn skips hooks so the password hook never sees this write.
		return tx.Model(&models.User{}).Where("id = ?", userID).UpdateColumn("schedule_json", text).Error
	})
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}
