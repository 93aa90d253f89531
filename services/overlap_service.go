// file: services/overlap_service.go
package services

import (
	"context"
	"fmt"
	"sort"

	"MYR/models"

	"go.uber.org/zap"
)

// AvailabilityStore is what the overlap engine reads and writes.
type AvailabilityStore interface {
	TeamExists(ctx context.Context, teamID uint32) (bool, error)
	TeamMembers(ctx context.Context, teamID uint32) ([]uint32, error)
	// Availability reports ok=false when the user never saved a schedule.
	Availability(ctx context.Context, userID uint32) (avail models.WeeklyAvailability, ok bool, err error)
	ConfirmedSlots(ctx context.Context, teamID uint32) ([]models.Slot, error)
	OtherTeams(ctx context.Context, userID, excludeTeamID uint32) ([]uint32, error)
	// InsertConfirmedSlots writes all slots in one transaction, skipping ones that
	// already exist, and returns how many rows were created.
	InsertConfirmedSlots(ctx context.Context, teamID uint32, slots []models.Slot) (int, error)
	DeleteConfirmedSlot(ctx context.Context, teamID uint32, slot models.Slot) (bool, error)
}

// MemberAvailability is one member's input to the aggregation. A nil Availability
// means the member never saved a schedule.
type MemberAvailability struct {
	UserID       uint32
	Availability models.WeeklyAvailability
	Busy         models.SlotSet
}

// AggregateOverlap counts, for every cell, the members who are free there and not
// already committed to one of their other teams.
func AggregateOverlap(members []MemberAvailability) models.OverlapGrid {
	var grid models.OverlapGrid
	for _, m := range members {
		if m.Availability == nil {
			continue
		}
		for di, day := range models.Days {
			flags, ok := m.Availability[day]
			if !ok {
				continue
			}
			for idx, free := range flags {
				if !free {
					continue
				}
				if m.Busy.Has(models.Slot{Day: day, Index: idx}) {
					continue
				}
				grid[di][idx]++
			}
		}
	}
	return grid
}

// OverlapService exposes the overlap engine to handlers.
type OverlapService struct {
	store AvailabilityStore
	cache OverlapCache
	log   *zap.Logger
}

func NewOverlapService(store AvailabilityStore, cache OverlapCache, log *zap.Logger) *OverlapService {
	if cache == nil {
		cache = NopOverlapCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OverlapService{store: store, cache: cache, log: log}
}

func (s *OverlapService) requireTeam(ctx context.Context, teamID uint32) error {
	ok, err := s.store.TeamExists(ctx, teamID)
	if err != nil {
		return fmt.Errorf("load team %d: %w", teamID, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// ComputeOverlap returns the 7x30 free-member grid for teamID.
func (s *OverlapService) ComputeOverlap(ctx context.Context, teamID uint32) (models.OverlapGrid, error) {
	if err := s.requireTeam(ctx, teamID); err != nil {
		return models.OverlapGrid{}, err
	}
	grid, epoch, ok := s.cache.Lookup(ctx, teamID)
	if ok {
		return grid, nil
	}

	memberIDs, err := s.store.TeamMembers(ctx, teamID)
	if err != nil {
		return models.OverlapGrid{}, fmt.Errorf("load members of team %d: %w", teamID, err)
	}

	// Several members often share the same other team.
	confirmedByTeam := make(map[uint32][]models.Slot)
	members := make([]MemberAvailability, 0, len(memberIDs))
	for _, uid := range memberIDs {
		avail, ok, err := s.store.Availability(ctx, uid)
		if err != nil {
			return models.OverlapGrid{}, fmt.Errorf("load availability of user %d: %w", uid, err)
		}
		if !ok {
			continue
		}
		others, err := s.store.OtherTeams(ctx, uid, teamID)
		if err != nil {
			return models.OverlapGrid{}, fmt.Errorf("load teams of user %d: %w", uid, err)
		}
		busy := make(models.SlotSet)
		for _, other := range others {
			if other == teamID {
				continue
			}
			slots, cached := confirmedByTeam[other]
			if !cached {
				slots, err = s.store.ConfirmedSlots(ctx, other)
				if err != nil {
					return models.OverlapGrid{}, fmt.Errorf("load confirmed slots of team %d: %w", other, err)
				}
				confirmedByTeam[other] = slots
			}
			for _, slot := range slots {
				busy.Add(slot)
			}
		}
		members = append(members, MemberAvailability{UserID: uid, Availability: avail, Busy: busy})
	}

	grid = AggregateOverlap(members)
	s.cache.Store(ctx, teamID, epoch, grid)
	return grid, nil
}

// ListConfirmedKeys returns teamID's confirmed slots as sorted "<day>_<index>" keys.
func (s *OverlapService) ListConfirmedKeys(ctx context.Context, teamID uint32) ([]string, error) {
	if err := s.requireTeam(ctx, teamID); err != nil {
		return nil, err
	}
	slots, err := s.store.ConfirmedSlots(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("load confirmed slots of team %d: %w", teamID, err)
	}
	sortSlots(slots)
	keys := make([]string, 0, len(slots))
	for _, slot := range slots {
		keys = append(keys, slot.Key())
	}
	return keys, nil
}

// BatchConfirm confirms every key for teamID. One malformed key rejects the whole
// batch before anything is written. Already confirmed slots are skipped and not
// counted.
func (s *OverlapService) BatchConfirm(ctx context.Context, teamID uint32, keys []string) (int, error) {
	slots, err := models.ParseSlotKeys(keys)
	if err != nil {
		return 0, slotKeyInvalid(err)
	}
	if err := s.requireTeam(ctx, teamID); err != nil {
		return 0, err
	}
	if len(slots) == 0 {
		return 0, nil
	}
	created, err := s.store.InsertConfirmedSlots(ctx, teamID, slots)
	if err != nil {
		return 0, fmt.Errorf("confirm slots for team %d: %w", teamID, err)
	}
	if created > 0 {
		s.Invalidate(ctx)
	}
	s.log.Info("slots confirmed",
		zap.Uint32("team_id", teamID),
		zap.Int("requested", len(slots)),
		zap.Int("created", created))
	return created, nil
}

// DeleteConfirm removes one confirmed slot. Removing a slot that is not confirmed
// returns ErrNotFound.
func (s *OverlapService) DeleteConfirm(ctx context.Context, teamID uint32, key string) error {
	slot, err := models.ParseSlotKey(key)
	if err != nil {
		return slotKeyInvalid(err)
	}
	if err := s.requireTeam(ctx, teamID); err != nil {
		return err
	}
	deleted, err := s.store.DeleteConfirmedSlot(ctx, teamID, slot)
	if err != nil {
		return fmt.Errorf("delete confirmed slot for team %d: %w", teamID, err)
	}
	if !deleted {
		return ErrNotFound
	}
	s.Invalidate(ctx)
	return nil
}

// Invalidate drops every cached grid. Any confirmation or availability change can
// move counts in teams other than the one touched.
func (s *OverlapService) Invalidate(ctx context.Context) {
	s.cache.InvalidateAll(ctx)
}

func sortSlots(slots []models.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		di, dj := slots[i].Day.Index(), slots[j].Day.Index()
		if di != dj {
			return di < dj
		}
		return slots[i].Index < slots[j].Index
	})
}
