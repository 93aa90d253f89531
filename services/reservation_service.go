// file: services/reservation_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MYR/models"

	"go.uber.org/zap"
)

type ReservationStore interface {
	SeedInstruments(ctx context.Context, instruments []models.Instrument) (int, error)
	Instrument(ctx context.Context, code string) (*models.Instrument, error)
	InstrumentsBySession(ctx context.Context, session models.UserSession) ([]models.Instrument, error)
	ToggleInstrument(ctx context.Context, code string) (bool, error)
	// CreateReservation returns ErrConflict when the instrument is already booked
	// for part of the window.
	CreateReservation(ctx context.Context, res *models.InstrumentReservation) error
	ReservationsFor(ctx context.Context, codes []string) ([]models.InstrumentReservation, error)
	DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ReservationEvent is one booking as drawn on the session calendar.
type ReservationEvent struct {
	Title    string    `json:"title"`
	ItemCode string    `json:"item_code"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Color    string    `json:"color"`
}

// SessionView is what the session page shows.
type SessionView struct {
	Session     models.UserSession  `json:"session"`
	Leader      *SessionLeader      `json:"leader"`
	Instruments []models.Instrument `json:"instruments"`
	Events      []ReservationEvent  `json:"events"`
}

type ReserveInput struct {
	ItemCode string
	Start    time.Time
	End      time.Time
}

type ReservationService struct {
	store   ReservationStore
	catalog *Catalog
	maxSpan time.Duration
	log     *zap.Logger
}

func NewReservationService(store ReservationStore, catalog *Catalog, maxSpan time.Duration, log *zap.Logger) *ReservationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReservationService{store: store, catalog: catalog, maxSpan: maxSpan, log: log}
}

// SeedCatalog fills an empty instruments table from the catalog.
func (s *ReservationService) SeedCatalog(ctx context.Context) (int, error) {
	n, err := s.store.SeedInstruments(ctx, s.catalog.Instruments())
	if err != nil {
		return 0, fmt.Errorf("seed instruments: %w", err)
	}
	if n > 0 {
		s.log.Info("instrument catalog seeded", zap.Int("instruments", n))
	}
	return n, nil
}

func (s *ReservationService) SessionView(ctx context.Context, sessionType string) (*SessionView, error) {
	session, ok := models.ParseSession(strings.ToLower(sessionType))
	if !ok {
		return nil, ErrNotFound
	}
	view := &SessionView{
		Session:     session,
		Instruments: []models.Instrument{},
		Events:      []ReservationEvent{},
	}
	if entry, ok := s.catalog.Session(session); ok {
		view.Leader = entry.Leader
	}

	instruments, err := s.store.InstrumentsBySession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("load instruments: %w", err)
	}
	if len(instruments) == 0 {
		return view, nil
	}
	view.Instruments = instruments

	codes := make([]string, 0, len(instruments))
	for _, inst := range instruments {
		codes = append(codes, inst.Code)
	}
	reservations, err := s.store.ReservationsFor(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}
	for i := range reservations {
		r := &reservations[i]
		view.Events = append(view.Events, ReservationEvent{
			Title:    r.User.DisplayName(),
			ItemCode: r.ItemCode,
			Start:    r.StartAt,
			End:      r.EndAt,
			Color:    s.catalog.Color(r.ItemCode),
		})
	}
	return view, nil
}

// Reserve books an instrument for [Start, End).
func (s *ReservationService) Reserve(ctx context.Context, actor Actor, in ReserveInput) (*models.InstrumentReservation, error) {
	if in.ItemCode == "" {
		return nil, invalid("item", "instrument is required")
	}
	if !in.Start.Before(in.End) {
		return nil, invalid("end", "end must be after start")
	}
	if s.maxSpan > 0 && in.End.Sub(in.Start) > s.maxSpan {
		return nil, invalid("end", fmt.Sprintf("reservations are limited to %s", s.maxSpan))
	}

	inst, err := s.store.Instrument(ctx, in.ItemCode)
	if err != nil {
		return nil, err
	}
	if !inst.IsAvailable {
		return nil, invalid("item", inst.Code+" is not available")
	}

	res := &models.InstrumentReservation{
		UserID:   actor.UserID,
		ItemCode: inst.Code,
		StartAt:  in.Start,
		EndAt:    in.End,
	}
	if err := s.store.CreateReservation(ctx, res); err != nil {
		return nil, err
	}
	s.log.Info("instrument reserved",
		zap.Uint32("user_id", actor.UserID),
		zap.String("item", inst.Code),
		zap.Time("start", in.Start),
		zap.Time("end", in.End))
	return res, nil
}

func (s *ReservationService) Toggle(ctx context.Context, actor Actor, code string) (bool, error) {
	if !actor.IsAdmin() {
		return false, ErrPermissionDenied
	}
	available, err := s.store.ToggleInstrument(ctx, code)
	if err != nil {
		return false, err
	}
	s.log.Info("instrument toggled", zap.String("item", code), zap.Bool("available", available))
	return available, nil
}

// PurgeEnded deletes reservations that ended before now minus retention.
func (s *ReservationService) PurgeEnded(ctx context.Context, now time.Time, retention time.Duration) (int64, error) {
	n, err := s.store.DeleteEndedBefore(ctx, now.Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("purge reservations: %w", err)
	}
	return n, nil
}
