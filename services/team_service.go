// file: services/team_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"MYR/models"
	"MYR/utils"

	"go.uber.org/zap"
)

type TeamStore interface {
	Create(ctx context.Context, team *models.Team) error
	Get(ctx context.Context, teamID uint32) (*models.Team, error)
	GetByInvitationCode(ctx context.Context, code string) (*models.Team, error)
	InvitationCodeExists(ctx context.Context, code string) (bool, error)
	ListForUser(ctx context.Context, userID uint32) ([]models.Team, error)
	IsMember(ctx context.Context, teamID, userID uint32) (bool, error)
	Members(ctx context.Context, teamID uint32) ([]models.TeamMember, error)
	AddMember(ctx context.Context, teamID, userID uint32, role models.TeamMemberRole) (bool, error)
	RemoveMember(ctx context.Context, teamID, userID uint32) (bool, error)
	Delete(ctx context.Context, teamID uint32) error
}

// UserLookup is the slice of the user store the team service needs.
type UserLookup interface {
	GetByID(ctx context.Context, userID uint32) (*models.User, error)
}

const invitationCodeLength = 12

// TeamView is everything the team page shows.
type TeamView struct {
	Team          *models.Team
	Members       []models.TeamMember
	Overlap       models.OverlapGrid
	ConfirmedKeys []string
}

// TeamService enforces who may read and change a team, and delegates grid work to
// the overlap service.
type TeamService struct {
	teams   TeamStore
	users   UserLookup
	overlap *OverlapService
	log     *zap.Logger
}

func NewTeamService(teams TeamStore, users UserLookup, overlap *OverlapService, log *zap.Logger) *TeamService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TeamService{teams: teams, users: users, overlap: overlap, log: log}
}

func (s *TeamService) Create(ctx context.Context, actor Actor, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "team name is required")
	}
	if len([]rune(name)) > 100 {
		return nil, invalid("name", "team name is longer than 100 characters")
	}

	code, err := s.uniqueInvitationCode(ctx)
	if err != nil {
		return nil, err
	}
	team := &models.Team{
		Name:           name,
		LeaderID:       actor.UserID,
		InvitationCode: code,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	s.overlap.Invalidate(ctx)
	s.log.Info("team created", zap.Uint32("team_id", team.ID), zap.Uint32("leader_id", actor.UserID))
	return team, nil
}

func (s *TeamService) uniqueInvitationCode(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		code := utils.GenerateInvitationCode(invitationCodeLength)
		exists, err := s.teams.InvitationCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check invitation code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique invitation code")
}

func (s *TeamService) ListMine(ctx context.Context, actor Actor) ([]models.Team, error) {
	return s.teams.ListForUser(ctx, actor.UserID)
}

// authorizeMember loads the team and checks the actor belongs to it. Admins may
// read every team.
func (s *TeamService) authorizeMember(ctx context.Context, actor Actor, teamID uint32, allowAdmin bool) (*models.Team, error) {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if allowAdmin && actor.IsAdmin() {
		return team, nil
	}
	ok, err := s.teams.IsMember(ctx, teamID, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !ok {
		return nil, ErrPermissionDenied
	}
	return team, nil
}

// View returns the team with its members, overlap grid and confirmed keys.
func (s *TeamService) View(ctx context.Context, actor Actor, teamID uint32) (*TeamView, error) {
	team, err := s.authorizeMember(ctx, actor, teamID, true)
	if err != nil {
		return nil, err
	}
	members, err := s.teams.Members(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}
	grid, err := s.overlap.ComputeOverlap(ctx, teamID)
	if err != nil {
		return nil, err
	}
	keys, err := s.overlap.ListConfirmedKeys(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return &TeamView{Team: team, Members: members, Overlap: grid, ConfirmedKeys: keys}, nil
}

// AddMember lets any member invite another user. Inviting someone already in the
// team is not an error; added reports whether a row was created.
func (s *TeamService) AddMember(ctx context.Context, actor Actor, teamID, userID uint32) (added bool, err error) {
	if _, err := s.authorizeMember(ctx, actor, teamID, false); err != nil {
		return false, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return false, err
	}
	added, err = s.teams.AddMember(ctx, teamID, userID, models.TeamRoleMember)
	if err != nil {
		return false, fmt.Errorf("add member: %w", err)
	}
	if added {
		s.overlap.Invalidate(ctx)
	}
	return added, nil
}

// Join adds the actor to the team owning code.
func (s *TeamService) Join(ctx context.Context, actor Actor, code string) (*models.Team, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, invalid("invitation_code", "invitation code is required")
	}
	team, err := s.teams.GetByInvitationCode(ctx, code)
	if err != nil {
		return nil, err
	}
	added, err := s.teams.AddMember(ctx, team.ID, actor.UserID, models.TeamRoleMember)
	if err != nil {
		return nil, fmt.Errorf("join team: %w", err)
	}
	if !added {
		return nil, ErrConflict
	}
	s.overlap.Invalidate(ctx)
	return team, nil
}

// ErrLeaderCannotLeave is returned when the leader tries to leave instead of
// deleting the team.
var ErrLeaderCannotLeave = errors.New("leader cannot leave the team")

func (s *TeamService) Leave(ctx context.Context, actor Actor, teamID uint32) error {
	team, err := s.authorizeMember(ctx, actor, teamID, false)
	if err != nil {
		return err
	}
	if team.LeaderID == actor.UserID {
		return ErrLeaderCannotLeave
	}
	if _, err := s.teams.RemoveMember(ctx, teamID, actor.UserID); err != nil {
		return fmt.Errorf("leave team: %w", err)
	}
	s.overlap.Invalidate(ctx)
	return nil
}

// Delete is allowed for the leader and for admins.
func (s *TeamService) Delete(ctx context.Context, actor Actor, teamID uint32) error {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return err
	}
	if team.LeaderID != actor.UserID && !actor.IsAdmin() {
		return ErrPermissionDenied
	}
	if err := s.teams.Delete(ctx, teamID); err != nil {
		return err
	}
	s.overlap.Invalidate(ctx)
	s.log.Info("team deleted", zap.Uint32("team_id", teamID), zap.Uint32("by", actor.UserID))
	return nil
}

// Overlap returns the grid and confirmed keys for a member.
func (s *TeamService) Overlap(ctx context.Context, actor Actor, teamID uint32) (models.OverlapGrid, []string, error) {
	if _, err := s.authorizeMember(ctx, actor, teamID, true); err != nil {
		return models.OverlapGrid{}, nil, err
	}
	grid, err := s.overlap.ComputeOverlap(ctx, teamID)
	if err != nil {
		return models.OverlapGrid{}, nil, err
	}
	keys, err := s.overlap.ListConfirmedKeys(ctx, teamID)
	if err != nil {
		return models.OverlapGrid{}, nil, err
	}
	return grid, keys, nil
}

// ConfirmResult reports a batch confirmation. Requested counts distinct slots.
type ConfirmResult struct {
	Requested int
	Created   int
}

// Confirm validates every key before checking membership so a malformed batch is
// always reported as such.
func (s *TeamService) Confirm(ctx context.Context, actor Actor, teamID uint32, keys []string) (ConfirmResult, error) {
	slots, err := models.ParseSlotKeys(keys)
	if err != nil {
		return ConfirmResult{}, slotKeyInvalid(err)
	}
	if _, err := s.authorizeMember(ctx, actor, teamID, false); err != nil {
		return ConfirmResult{}, err
	}
	created, err := s.overlap.BatchConfirm(ctx, teamID, keys)
	if err != nil {
		return ConfirmResult{}, err
	}
	return ConfirmResult{Requested: len(slots), Created: created}, nil
}

func (s *TeamService) Unconfirm(ctx context.Context, actor Actor, teamID uint32, key string) error {
	if _, err := models.ParseSlotKey(key); err != nil {
		return slotKeyInvalid(err)
	}
	if _, err := s.authorizeMember(ctx, actor, teamID, false); err != nil {
		return err
	}
	return s.overlap.DeleteConfirm(ctx, teamID, key)
}
