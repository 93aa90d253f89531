// file: repos/team_repo.go
package repos

import (
	"context"
	"time"

	"MYR/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeamRepo struct {
	db *gorm.DB
	lg *zap.Logger
}

func NewTeamRepo(db *gorm.DB, lg *zap.Logger) *TeamRepo {
	return &TeamRepo{db: db, lg: lg}
}

// Create inserts the team and its leader membership together.
func (r *TeamRepo) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(team).Error; err != nil {
			return err
		}
		leader := models.TeamMember{
			TeamID:   team.ID,
			UserID:   team.LeaderID,
			Role:     models.TeamRoleLeader,
			JoinedAt: time.Now(),
		}
		return tx.Create(&leader).Error
	})
}

func (r *TeamRepo) Get(ctx context.Context, teamID uint32) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Preload("Leader").First(&team, teamID).Error; err != nil {
		return nil, notFound(err)
	}
	return &team, nil
}

func (r *TeamRepo) GetByInvitationCode(ctx context.Context, code string) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Where("invitation_code = ?", code).First(&team).Error; err != nil {
		return nil, notFound(err)
	}
	return &team, nil
}

func (r *TeamRepo) InvitationCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Team{}).Where("invitation_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *TeamRepo) ListForUser(ctx context.Context, userID uint32) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).
		Joins("JOIN myr_team_members m ON m.team_id = myr_team.id").
		Where("m.user_id = ?", userID).
		Preload("Leader").
		Order("myr_team.id asc").
		Find(&teams).Error
	return teams, err
}

func (r *TeamRepo) IsMember(ctx context.Context, teamID, userID uint32) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *TeamRepo) Members(ctx context.Context, teamID uint32) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Preload("User").
		Order("joined_at asc, id asc").
		Find(&members).Error
	return members, err
}

// AddMember reports false when the user already belongs to the team.
func (r *TeamRepo) AddMember(ctx context.Context, teamID, userID uint32, role models.TeamMemberRole) (bool, error) {
	member := models.TeamMember{
		TeamID:   teamID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Omit(clause.Associations).Create(&member)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *TeamRepo) RemoveMember(ctx context.Context, teamID, userID uint32) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the team with its memberships and confirmed slots.
func (r *TeamRepo) Delete(ctx context.Context, teamID uint32) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", teamID).Delete(&models.ConfirmedSlot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", teamID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Team{}, teamID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return notFound(err)
}
