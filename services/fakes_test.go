// file: services/fakes_test.go
package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"MYR/models"
)

// memStore is an in-memory backing for every store interface in this package.
type memStore struct {
	mu        sync.Mutex
	users     map[uint32]*models.User
	teams     map[uint32]*models.Team
	members   map[uint32]map[uint32]models.TeamMemberRole
	confirmed map[uint32]map[models.Slot]bool
	avail     map[uint32]models.WeeklyAvailability
	nextID    uint32

	instruments  map[string]*models.Instrument
	reservations []models.InstrumentReservation

	insertCalls int
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[uint32]*models.User),
		teams:       make(map[uint32]*models.Team),
		members:     make(map[uint32]map[uint32]models.TeamMemberRole),
		confirmed:   make(map[uint32]map[models.Slot]bool),
		avail:       make(map[uint32]models.WeeklyAvailability),
		instruments: make(map[string]*models.Instrument),
	}
}

func (m *memStore) id() uint32 {
	m.nextID++
	return m.nextID
}

// helpers for test setup

func (m *memStore) addTeam(leader uint32, memberIDs ...uint32) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.teams[id] = &models.Team{ID: id, Name: "team", LeaderID: leader, InvitationCode: "CODE" + string(rune('A'+id))}
	m.members[id] = map[uint32]models.TeamMemberRole{leader: models.TeamRoleLeader}
	for _, uid := range memberIDs {
		m.members[id][uid] = models.TeamRoleMember
	}
	return id
}

func (m *memStore) setFree(userID uint32, day models.Day, idx ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.avail[userID]
	if !ok {
		w = models.WeeklyAvailability{}
		m.avail[userID] = w
	}
	f := w[day]
	for _, i := range idx {
		f[i] = true
	}
	w[day] = f
}

func (m *memStore) confirm(teamID uint32, keys ...string) {
	slots, err := models.ParseSlotKeys(keys)
	if err != nil {
		panic(err)
	}
	if _, err := m.InsertConfirmedSlots(context.Background(), teamID, slots); err != nil {
		panic(err)
	}
}

// AvailabilityStore

func (m *memStore) TeamExists(_ context.Context, teamID uint32) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.teams[teamID]
	return ok, nil
}

func (m *memStore) TeamMembers(_ context.Context, teamID uint32) ([]uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []uint32
	for uid := range m.members[teamID] {
		ids = append(ids, uid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *memStore) Availability(_ context.Context, userID uint32) (models.WeeklyAvailability, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.avail[userID]
	return w, ok, nil
}

func (m *memStore) ConfirmedSlots(_ context.Context, teamID uint32) ([]models.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Slot
	for s := range m.confirmed[teamID] {
		out = append(out, s)
	}
	return out, nil
}

func (m *memStore) OtherTeams(_ context.Context, userID, excludeTeamID uint32) ([]uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []uint32
	for tid, ms := range m.members {
		if _, ok := ms[userID]; ok && tid != excludeTeamID {
			out = append(out, tid)
		}
	}
	return out, nil
}

func (m *memStore) InsertConfirmedSlots(_ context.Context, teamID uint32, slots []models.Slot) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertCalls++
	if m.confirmed[teamID] == nil {
		m.confirmed[teamID] = make(map[models.Slot]bool)
	}
	created := 0
	for _, s := range slots {
		if !m.confirmed[teamID][s] {
			m.confirmed[teamID][s] = true
			created++
		}
	}
	return created, nil
}

func (m *memStore) DeleteConfirmedSlot(_ context.Context, teamID uint32, slot models.Slot) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.confirmed[teamID][slot] {
		return false, nil
	}
	delete(m.confirmed[teamID], slot)
	return true, nil
}

// TeamStore

func (m *memStore) Create(_ context.Context, team *models.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	team.ID = m.id()
	cp := *team
	m.teams[team.ID] = &cp
	m.members[team.ID] = map[uint32]models.TeamMemberRole{team.LeaderID: models.TeamRoleLeader}
	return nil
}

func (m *memStore) Get(_ context.Context, teamID uint32) (*models.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.teams[teamID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) GetByInvitationCode(_ context.Context, code string) (*models.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.teams {
		if t.InvitationCode == code {
			cp := *t
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) InvitationCodeExists(ctx context.Context, code string) (bool, error) {
	_, err := m.GetByInvitationCode(ctx, code)
	return err == nil, nil
}

func (m *memStore) ListForUser(_ context.Context, userID uint32) ([]models.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Team
	for tid, ms := range m.members {
		if _, ok := ms[userID]; ok {
			out = append(out, *m.teams[tid])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) IsMember(_ context.Context, teamID, userID uint32) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.members[teamID][userID]
	return ok, nil
}

func (m *memStore) Members(_ context.Context, teamID uint32) ([]models.TeamMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.TeamMember
	for uid, role := range m.members[teamID] {
		out = append(out, models.TeamMember{TeamID: teamID, UserID: uid, Role: role})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (m *memStore) AddMember(_ context.Context, teamID, userID uint32, role models.TeamMemberRole) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.members[teamID][userID]; ok {
		return false, nil
	}
	m.members[teamID][userID] = role
	return true, nil
}

func (m *memStore) RemoveMember(_ context.Context, teamID, userID uint32) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.members[teamID][userID]; !ok {
		return false, nil
	}
	delete(m.members[teamID], userID)
	return true, nil
}

func (m *memStore) Delete(_ context.Context, teamID uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.teams[teamID]; !ok {
		return ErrNotFound
	}
	delete(m.teams, teamID)
	delete(m.members, teamID)
	delete(m.confirmed, teamID)
	return nil
}

// UserStore

func (m *memStore) CreateUser(u *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.id()
	m.users[u.ID] = u
}

func (m *memStore) GetByID(_ context.Context, userID uint32) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// ReservationStore

func (m *memStore) SeedInstruments(_ context.Context, instruments []models.Instrument) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.instruments) > 0 {
		return 0, nil
	}
	for i := range instruments {
		inst := instruments[i]
		m.instruments[inst.Code] = &inst
	}
	return len(instruments), nil
}

func (m *memStore) Instrument(_ context.Context, code string) (*models.Instrument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.instruments[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *inst
	return &cp, nil
}

func (m *memStore) InstrumentsBySession(_ context.Context, session models.UserSession) ([]models.Instrument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Instrument
	for _, inst := range m.instruments {
		if inst.Session == session {
			out = append(out, *inst)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *memStore) ToggleInstrument(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.instruments[code]
	if !ok {
		return false, ErrNotFound
	}
	inst.IsAvailable = !inst.IsAvailable
	return inst.IsAvailable, nil
}

func (m *memStore) CreateReservation(_ context.Context, res *models.InstrumentReservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reservations {
		if r.ItemCode == res.ItemCode && r.Overlaps(res.StartAt, res.EndAt) {
			return ErrConflict
		}
	}
	res.ID = m.id()
	m.reservations = append(m.reservations, *res)
	return nil
}

func (m *memStore) ReservationsFor(_ context.Context, codes []string) ([]models.InstrumentReservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := make(map[string]bool, len(codes))
	for _, c := range codes {
		want[c] = true
	}
	var out []models.InstrumentReservation
	for _, r := range m.reservations {
		if want[r.ItemCode] {
			if u, ok := m.users[r.UserID]; ok {
				r.User = *u
			}
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) DeleteEndedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.reservations[:0]
	var n int64
	for _, r := range m.reservations {
		if r.EndAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.reservations = kept
	return n, nil
}

// countingCache records invalidations and serves whatever was stored last.
type countingCache struct {
	mu          sync.Mutex
	grids       map[uint32]models.OverlapGrid
	invalidated int
}

func newCountingCache() *countingCache {
	return &countingCache{grids: make(map[uint32]models.OverlapGrid)}
}

func (c *countingCache) Lookup(_ context.Context, teamID uint32) (models.OverlapGrid, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.grids[teamID]
	return g, "e", ok
}

func (c *countingCache) Store(_ context.Context, teamID uint32, _ string, grid models.OverlapGrid) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grids[teamID] = grid
}

func (c *countingCache) InvalidateAll(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.grids = make(map[uint32]models.OverlapGrid)
}
