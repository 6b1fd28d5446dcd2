package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/scalable_booking/internal/core/domain"
	"github.com/srgjo27/scalable_booking/internal/core/ports"
	"go.uber.org/zap"
)

type SeatInventoryService struct {
	seats    ports.ShowSeatRepository
	catalog  ports.SeatCatalog
	cache    *redis.Client
	log      *zap.Logger
	now      func() time.Time
	cacheTTL time.Duration
}

// NewSeatInventoryService wires the inventory. cache may be nil, in which
// case availability is always read from the repository.
func NewSeatInventoryService(seats ports.ShowSeatRepository, catalog ports.SeatCatalog, cache *redis.Client, log *zap.Logger, opts ...Option) *SeatInventoryService {
	if log == nil {
		log = zap.NewNop()
	}
	st := newSettings(opts)
	return &SeatInventoryService{
		seats:    seats,
		catalog:  catalog,
		cache:    cache,
		log:      log,
		now:      st.now,
		cacheTTL: st.cacheTTL,
	}
}

var _ ports.SeatInventory = (*SeatInventoryService)(nil)

func availabilityKey(showID uuid.UUID) string {
	return fmt.Sprintf("seats:%s", showID.String())
}

// generationKey is bumped after every committed seat mutation of the show.
func generationKey(showID uuid.UUID) string {
	return fmt.Sprintf("seats:%s:gen", showID.String())
}

// availabilityEntry is only served while Generation matches generationKey.
type availabilityEntry struct {
	Generation int64             `json:"generation"`
	Seats      []domain.ShowSeat `json:"seats"`
}

// RegisterShow maps a show onto a screen and opens one AVAILABLE row per seat.
func (s *SeatInventoryService) RegisterShow(ctx context.Context, id domain.Identity, showID, screenID uuid.UUID) error {
	if !id.HasAnyRole(domain.RolePartnerAdmin, domain.RoleTheatreManager) {
		return domain.ErrPartnerRoleRequired
	}
	if id.TenantID == nil {
		return domain.ErrTenantRequired
	}

	screen, err := s.catalog.GetScreen(ctx, screenID)
	if err != nil {
		return err
	}
	if screen.TenantID != *id.TenantID {
		return domain.ErrTenantMismatch
	}

	seats, err := s.catalog.SeatsByScreen(ctx, screen.ID)
	if err != nil {
		return fmt.Errorf("list seats of screen %s: %w", screen.ID, err)
	}

	seatIDs := make([]uuid.UUID, 0, len(seats))
	for _, seat := range seats {
		seatIDs = append(seatIDs, seat.ID)
	}

	if err := s.seats.RegisterShow(ctx, showID, screen.ID, seatIDs); err != nil {
		return err
	}

	s.log.Info("show registered",
		zap.String("show_id", showID.String()),
		zap.String("screen_id", screen.ID.String()),
		zap.Int("seats", len(seatIDs)),
	)
	s.invalidate(ctx, showID)
	return nil
}

func (s *SeatInventoryService) GetShowScreen(ctx context.Context, showID uuid.UUID) (uuid.UUID, error) {
	return s.seats.FindScreenByShow(ctx, showID)
}

// LockSeats holds every requested seat for bookingID or none of them.
func (s *SeatInventoryService) LockSeats(ctx context.Context, showID, bookingID uuid.UUID, labels []string, ttlMinutes int) error {
	if len(labels) == 0 {
		return domain.ErrNoSeatsRequested
	}

	screenID, err := s.seats.FindScreenByShow(ctx, showID)
	if err != nil {
		return err
	}

	now := s.now()
	s.sweep(ctx, now)

	seats, err := s.catalog.SeatsByLabels(ctx, screenID, labels)
	if err != nil {
		return fmt.Errorf("resolve seat labels: %w", err)
	}
	if len(seats) != len(labels) {
		return fmt.Errorf("one or more seat labels not found or duplicate: %w", domain.ErrSeatsNotAvailable)
	}

	seatIDs := make([]uuid.UUID, 0, len(seats))
	for _, seat := range seats {
		seatIDs = append(seatIDs, seat.ID)
	}

	ttl := domain.ClampLockTTL(&ttlMinutes, domain.DefaultSeatLockTTLMinutes)
	lockedUntil := now.Add(time.Duration(ttl) * time.Minute)

	if err := s.seats.LockSeats(ctx, showID, bookingID, seatIDs, now, lockedUntil); err != nil {
		return err
	}

	s.invalidate(ctx, showID)
	return nil
}

func (s *SeatInventoryService) ConfirmSeats(ctx context.Context, showID, bookingID uuid.UUID) error {
	if _, err := s.seats.FindScreenByShow(ctx, showID); err != nil {
		return err
	}

	updated, err := s.seats.ConfirmSeats(ctx, showID, bookingID, s.now())
	if err != nil {
		return err
	}
	if updated == 0 {
		return domain.ErrNoLockedSeats
	}

	s.invalidate(ctx, showID)
	return nil
}

func (s *SeatInventoryService) ReleaseSeats(ctx context.Context, showID, bookingID uuid.UUID) error {
	if _, err := s.seats.FindScreenByShow(ctx, showID); err != nil {
		return err
	}

	released, err := s.seats.ReleaseSeats(ctx, showID, bookingID)
	if err != nil {
		return err
	}

	if released > 0 {
		s.invalidate(ctx, showID)
	}
	return nil
}

// GetAvailability reports the effective status of every seat of the show.
func (s *SeatInventoryService) GetAvailability(ctx context.Context, showID uuid.UUID) ([]domain.SeatAvailability, error) {
	if _, err := s.seats.FindScreenByShow(ctx, showID); err != nil {
		return nil, err
	}

	now := s.now()
	s.sweep(ctx, now)

	rows, err := s.showSeats(ctx, showID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SeatAvailability, 0, len(rows))
	for i := range rows {
		out = append(out, domain.SeatAvailability{
			SeatID: rows[i].SeatID,
			Label:  rows[i].Label,
			Status: rows[i].EffectiveStatus(now),
		})
	}
	return out, nil
}

// sweep frees lapsed locks. A failure only makes the next step less accurate,
// the conditional lock write stays correct on its own.
func (s *SeatInventoryService) sweep(ctx context.Context, now time.Time) {
	n, err := s.seats.ReleaseExpiredLocks(ctx, now)
	if err != nil {
		s.log.Warn("release expired locks failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Debug("released expired locks", zap.Int64("seats", n))
	}
}

// showSeats returns raw rows, from redis when possible. Cached rows are
// never interpreted without the current clock, so a cached lock cannot
// outlive its deadline. The generation is read before the repository so a
// snapshot that races a mutation is written under a generation that is
// already stale.
func (s *SeatInventoryService) showSeats(ctx context.Context, showID uuid.UUID) ([]domain.ShowSeat, error) {
	key := availabilityKey(showID)

	generation, cacheable := int64(0), false
	if s.cache != nil {
		vals, err := s.cache.MGet(ctx, generationKey(showID), key).Result()
		if err != nil {
			s.log.Warn("availability cache read failed", zap.String("key", key), zap.Error(err))
		} else if generation, err = parseGeneration(vals[0]); err != nil {
			s.log.Warn("unreadable availability generation", zap.String("key", key), zap.Error(err))
		} else {
			cacheable = true
			if raw, ok := vals[1].(string); ok {
				var entry availabilityEntry
				switch err := json.Unmarshal([]byte(raw), &entry); {
				case err != nil:
					s.log.Warn("discarding unreadable availability cache entry", zap.String("key", key))
				case entry.Generation == generation:
					return entry.Seats, nil
				}
			}
		}
	}

	rows, err := s.seats.ListByShow(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("list seats of show %s: %w", showID, err)
	}

	if cacheable {
		if payload, err := json.Marshal(availabilityEntry{Generation: generation, Seats: rows}); err == nil {
			if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL).Err(); err != nil {
				s.log.Warn("availability cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return rows, nil
}

func parseGeneration(v any) (int64, error) {
	switch g := v.(type) {
	case nil:
		return 0, nil
	case string:
		return strconv.ParseInt(g, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected generation type %T", v)
	}
}

// invalidate retires every snapshot taken before the mutation that just committed.
func (s *SeatInventoryService) invalidate(ctx context.Context, showID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, generationKey(showID)).Err(); err != nil {
		s.log.Warn("availability cache invalidation failed",
			zap.String("show_id", showID.String()),
			zap.Error(err),
		)
	}
}
