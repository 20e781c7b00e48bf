package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// busyWindowPadding widens day queries so appointments or blocks that start
// on a neighboring day but spill into this one are still considered.
const busyWindowPadding = 4 * time.Hour

type AvailabilityService interface {
	GetAvailableSlots(ctx context.Context, tenantID uuid.UUID, serviceID, date string, isHomeVisit bool) (*response.AvailableSlotsResponse, error)
	BulkCreateBlocks(ctx context.Context, tenantID uuid.UUID, req *request.BulkCreateBlocksRequest) (*response.BulkCreateBlocksResponse, error)
	BulkDeleteBlocks(ctx context.Context, tenantID uuid.UUID, req *request.BulkDeleteBlocksRequest) (*response.BulkDeleteBlocksResponse, error)

	// ValidateSlot checks a single start candidate against business hours and
	// the collision predicate. Booking mutations call it right before
	// persisting so a slot list gone stale cannot be committed.
	ValidateSlot(ctx context.Context, tenantID uuid.UUID, svc *entity.Service, startAt time.Time, isHomeVisit bool, excludeAppointmentID uuid.UUID) (bufferBefore, bufferAfter float64, err error)

	Location() *time.Location
}

type availabilityService struct {
	repo *repository.Repository
	cfg  *utils.Config
	loc  *time.Location
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, cfg *utils.Config, log *zap.Logger) AvailabilityService {
	loc, err := time.LoadLocation(cfg.Booking.TimeZone)
	if err != nil {
		log.Warn("Unknown booking time zone, falling back to UTC", zap.String("time_zone", cfg.Booking.TimeZone), zap.Error(err))
		loc = time.UTC
	}
	return &availabilityService{
		repo: repo,
		cfg:  cfg,
		loc:  loc,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) Location() *time.Location {
	return s.loc
}

// busyInterval is an occupied window in minutes relative to a day start,
// half-open [start, end).
type busyInterval struct {
	start float64
	end   float64
}

func intervalsOverlap(aStart, aEnd, bStart, bEnd float64) bool {
	return aStart < bEnd && aEnd > bStart
}

// wallClockMinutes converts a timestamp to wall-clock minutes relative to
// dayStart's midnight, treating every day as 1440 minutes. Elapsed-duration
// arithmetic drifts by an hour across a DST transition, so a 10:00
// appointment would land on the 09:00 slot on a spring-forward day.
func (s *availabilityService) wallClockMinutes(ts time.Time, dayStart time.Time) float64 {
	local := ts.In(s.loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	days := math.Round(midnight.Sub(dayStart).Hours() / 24)
	return days*24*60 + float64(local.Hour()*60+local.Minute())
}

func parseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func (s *availabilityService) GetAvailableSlots(ctx context.Context, tenantID uuid.UUID, serviceID, date string, isHomeVisit bool) (*response.AvailableSlotsResponse, error) {
	serviceUUID, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", serviceID, err)
	}

	dayStart, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", date, err)
	}

	svc, err := s.repo.Service.FindByID(ctx, tenantID, serviceUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if svc == nil || !svc.Active {
		return nil, fmt.Errorf("service not found")
	}
	if isHomeVisit && !svc.HomeVisitAvailable {
		return nil, fmt.Errorf("service %s cannot be booked as a home visit", svc.Name)
	}

	res := &response.AvailableSlotsResponse{
		Date:        date,
		ServiceID:   serviceID,
		IsHomeVisit: isHomeVisit,
		Slots:       []string{},
	}

	hours, err := s.repo.BusinessHour.FindByWeekday(ctx, tenantID, int(dayStart.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("failed to load business hours: %w", err)
	}
	if hours == nil || hours.Closed {
		return res, nil
	}

	openMin, err := parseClock(hours.OpensAt)
	if err != nil {
		return nil, err
	}
	closeMin, err := parseClock(hours.ClosesAt)
	if err != nil {
		return nil, err
	}

	setting, err := s.repo.Setting.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	before, after := resolveServiceBuffers(svc, setting, isHomeVisit, s.cfg.Booking.FallbackBufferMinutes)

	busy, err := s.busyIntervals(ctx, tenantID, dayStart, uuid.Nil)
	if err != nil {
		return nil, err
	}

	step := s.cfg.Booking.SlotStepMinutes
	if step <= 0 {
		step = 30
	}

	// The service interval must fit inside opening hours, and hours are
	// half-open so closing time itself never starts a visit. The resolved
	// buffers may spill past them and only matter for collisions.
	for t := openMin; t < closeMin && t+svc.DurationMinutes <= closeMin; t += step {
		occStart := float64(t) - before
		occEnd := float64(t+svc.DurationMinutes) + after
		if s.collides(busy, occStart, occEnd) {
			continue
		}
		res.Slots = append(res.Slots, formatClock(t))
	}

	return res, nil
}

func (s *availabilityService) ValidateSlot(ctx context.Context, tenantID uuid.UUID, svc *entity.Service, startAt time.Time, isHomeVisit bool, excludeAppointmentID uuid.UUID) (float64, float64, error) {
	local := startAt.In(s.loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)

	hours, err := s.repo.BusinessHour.FindByWeekday(ctx, tenantID, int(dayStart.Weekday()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load business hours: %w", err)
	}
	if hours == nil || hours.Closed {
		return 0, 0, fmt.Errorf("slot unavailable: the studio is closed on %s", dayStart.Format("2006-01-02"))
	}

	openMin, err := parseClock(hours.OpensAt)
	if err != nil {
		return 0, 0, err
	}
	closeMin, err := parseClock(hours.ClosesAt)
	if err != nil {
		return 0, 0, err
	}

	startMin := local.Hour()*60 + local.Minute()
	if startMin < openMin || startMin >= closeMin || startMin+svc.DurationMinutes > closeMin {
		return 0, 0, fmt.Errorf("slot unavailable: outside business hours")
	}

	setting, err := s.repo.Setting.FindByTenant(ctx, tenantID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load settings: %w", err)
	}
	before, after := resolveServiceBuffers(svc, setting, isHomeVisit, s.cfg.Booking.FallbackBufferMinutes)

	busy, err := s.busyIntervals(ctx, tenantID, dayStart, excludeAppointmentID)
	if err != nil {
		return 0, 0, err
	}

	occStart := float64(startMin) - before
	occEnd := float64(startMin+svc.DurationMinutes) + after
	if s.collides(busy, occStart, occEnd) {
		return 0, 0, fmt.Errorf("slot unavailable: conflicts with an existing appointment or block")
	}

	return before, after, nil
}

func (s *availabilityService) collides(busy []busyInterval, occStart, occEnd float64) bool {
	for _, b := range busy {
		if intervalsOverlap(occStart, occEnd, b.start, b.end) {
			return true
		}
	}
	return false
}

// busyIntervals collects the occupied windows of one calendar day: buffered
// appointment intervals plus raw availability blocks. An appointment's
// occupied window runs from its start minus the resolved before-buffer for
// its total duration, which already includes both buffers.
func (s *availabilityService) busyIntervals(ctx context.Context, tenantID uuid.UUID, dayStart time.Time, excludeAppointmentID uuid.UUID) ([]busyInterval, error) {
	from := dayStart.Add(-busyWindowPadding)
	to := dayStart.Add(24*time.Hour + busyWindowPadding)

	appointments, err := s.repo.Appointment.FindActiveBetween(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	setting, err := s.repo.Setting.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	serviceCache := make(map[uuid.UUID]*entity.Service)
	busy := make([]busyInterval, 0, len(appointments))

	for _, appt := range appointments {
		if appt.ID == excludeAppointmentID {
			continue
		}

		svc, ok := serviceCache[appt.ServiceID]
		if !ok {
			svc, err = s.repo.Service.FindByID(ctx, tenantID, appt.ServiceID)
			if err != nil {
				return nil, fmt.Errorf("failed to load service for appointment %s: %w", appt.ID.String(), err)
			}
			serviceCache[appt.ServiceID] = svc
		}

		before := s.cfg.Booking.FallbackBufferMinutes
		if svc != nil {
			before, _ = resolveServiceBuffers(svc, setting, appt.IsHomeVisit, s.cfg.Booking.FallbackBufferMinutes)
		}

		startMin := s.wallClockMinutes(appt.StartAt, dayStart)
		busy = append(busy, busyInterval{
			start: startMin - before,
			end:   startMin - before + float64(appt.TotalDurationMinutes),
		})
	}

	blocks, err := s.repo.AvailabilityBlock.FindBetween(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability blocks: %w", err)
	}
	for _, block := range blocks {
		busy = append(busy, busyInterval{
			start: s.wallClockMinutes(block.StartAt, dayStart),
			end:   s.wallClockMinutes(block.EndAt, dayStart),
		})
	}

	return busy, nil
}

func (s *availabilityService) BulkCreateBlocks(ctx context.Context, tenantID uuid.UUID, req *request.BulkCreateBlocksRequest) (*response.BulkCreateBlocksResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Bulk create blocks validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	res := &response.BulkCreateBlocksResponse{Skipped: []response.SkippedBlockEntry{}}
	busyByDate := make(map[string][]busyInterval)
	toCreate := make([]*entity.AvailabilityBlock, 0, len(req.Entries))

	for _, entry := range req.Entries {
		dayStart, err := time.ParseInLocation("2006-01-02", entry.Date, s.loc)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", entry.Date, err)
		}

		startMin, err := parseClock(entry.StartTime)
		if err != nil {
			return nil, err
		}
		endMin, err := parseClock(entry.EndTime)
		if err != nil {
			return nil, err
		}
		if endMin <= startMin {
			res.Skipped = append(res.Skipped, response.SkippedBlockEntry{
				Date:      entry.Date,
				StartTime: entry.StartTime,
				Reason:    "end time is not after start time",
			})
			continue
		}

		busy, ok := busyByDate[entry.Date]
		if !ok {
			busy, err = s.busyIntervals(ctx, tenantID, dayStart, uuid.Nil)
			if err != nil {
				return nil, err
			}
			busyByDate[entry.Date] = busy
		}

		if s.collides(busy, float64(startMin), float64(endMin)) {
			res.Skipped = append(res.Skipped, response.SkippedBlockEntry{
				Date:      entry.Date,
				StartTime: entry.StartTime,
				Reason:    "overlaps an existing appointment or block",
			})
			continue
		}

		blockType := req.BlockType
		toCreate = append(toCreate, &entity.AvailabilityBlock{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			TenantID:   tenantID,
			StartAt:    time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), startMin/60, startMin%60, 0, 0, s.loc),
			EndAt:      time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), endMin/60, endMin%60, 0, 0, s.loc),
			BlockType:  &blockType,
		})

		// Later entries in the same payload collide against accepted ones.
		busyByDate[entry.Date] = append(busy, busyInterval{start: float64(startMin), end: float64(endMin)})
	}

	if len(toCreate) > 0 {
		if err := s.repo.AvailabilityBlock.CreateBatch(ctx, toCreate); err != nil {
			return nil, fmt.Errorf("failed to create availability blocks: %w", err)
		}
	}
	res.Created = len(toCreate)

	s.log.Info("Bulk blocks created",
		zap.Int("created", res.Created),
		zap.Int("skipped", len(res.Skipped)),
		zap.String("block_type", req.BlockType),
	)

	return res, nil
}

func (s *availabilityService) BulkDeleteBlocks(ctx context.Context, tenantID uuid.UUID, req *request.BulkDeleteBlocksRequest) (*response.BulkDeleteBlocksResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Bulk delete blocks validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	monthStart, err := time.ParseInLocation("2006-01", req.Month, s.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", req.Month, err)
	}

	deleted, err := s.repo.AvailabilityBlock.DeleteBetween(ctx, tenantID, monthStart, monthStart.AddDate(0, 1, 0), req.BlockType)
	if err != nil {
		return nil, fmt.Errorf("failed to delete availability blocks: %w", err)
	}

	s.log.Info("Bulk blocks deleted", zap.Int64("deleted", deleted), zap.String("month", req.Month))

	return &response.BulkDeleteBlocksResponse{Deleted: deleted}, nil
}
