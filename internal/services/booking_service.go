package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/auth"
	"github.com/Ezra-Tech-EB/BAHIS/internal/event"
	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/refseq"
	"github.com/Ezra-Tech-EB/BAHIS/internal/repository"
)

// BookingService owns the booking lifecycle. All status changes go through
// its transition methods; nothing else mutates a booking.
type BookingService struct {
	bookingRepo  repository.IBookingRepository
	userRepo     repository.IUserRepository
	importRepo   repository.IImportInspectionRepository
	farmInspRepo repository.IFarmInspectionRepository
	refGen       *refseq.Generator
	publisher    *event.Publisher
}

func NewBookingService(
	bookingRepo repository.IBookingRepository,
	userRepo repository.IUserRepository,
	importRepo repository.IImportInspectionRepository,
	farmInspRepo repository.IFarmInspectionRepository,
	refGen *refseq.Generator,
	publisher *event.Publisher,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		importRepo:   importRepo,
		farmInspRepo: farmInspRepo,
		refGen:       refGen,
		publisher:    publisher,
	}
}

// Submit commits a public booking request. Resubmitting the same submission
// token returns the already-committed booking, so a client retry never
// creates a duplicate.
func (s *BookingService) Submit(ctx context.Context, actor models.Actor, req *models.SubmitBookingRequest) (*models.Booking, error) {
	if err := auth.Require(actor, auth.ResourceBookings, auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	if existing, err := s.bookingRepo.GetBySubmissionToken(ctx, req.SubmissionToken); err == nil {
		slog.Info("duplicate submission token, returning committed booking",
			"reference", existing.ReferenceNumber)
		return existing, nil
	}

	ref, err := s.refGen.Generate(ctx, refseq.PrefixBooking, time.Now())
	if err != nil {
		var exhausted *models.ExhaustedSequence
		if !errors.As(err, &exhausted) {
			return nil, fmt.Errorf("failed to generate booking reference: %w", err)
		}
		ref = s.refGen.GenerateExtended(refseq.PrefixBooking, time.Now())
		slog.Warn("booking sequence exhausted, using extended reference", "reference", ref)
	}

	booking := &models.Booking{
		ReferenceNumber: ref,
		SubmissionToken: req.SubmissionToken,
		Contact:         req.Contact,
		InspectionType:  req.InspectionType,
		PreferredDate:   req.PreferredDate,
		PreferredTime:   req.PreferredTime,
		AlternativeDate: req.AlternativeDate,
		AlternativeTime: req.AlternativeTime,
		Urgency:         req.Urgency,
		ImportDetails:   req.ImportDetails,
		FarmDetails:     req.FarmDetails,
		SpecialRequests: req.SpecialRequests,
		Notes:           req.Notes,
		Status:          models.BookingPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	slog.Info("booking submitted",
		"reference", booking.ReferenceNumber,
		"type", booking.InspectionType,
		"urgency", booking.Urgency)
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Booking, error) {
	if err := auth.Require(actor, auth.ResourceBookings, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context, actor models.Actor, status *models.BookingStatus) ([]models.Booking, error) {
	if err := auth.Require(actor, auth.ResourceBookings, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.bookingRepo.List(ctx, status)
}

// Confirm moves a pending booking to confirmed. Admin only.
func (s *BookingService) Confirm(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Booking, error) {
	return s.transition(ctx, actor, id, models.BookingConfirmed, func(b *models.Booking) error {
		return nil
	})
}

// Reject moves a pending booking to rejected. The reason is mandatory and is
// only ever set on this path, keeping the rejection-reason invariant.
func (s *BookingService) Reject(ctx context.Context, actor models.Actor, id uuid.UUID, reason string) (*models.Booking, error) {
	if reason == "" {
		return nil, &models.ValidationError{Field: "reason", Message: "rejection reason is required"}
	}
	return s.transition(ctx, actor, id, models.BookingRejected, func(b *models.Booking) error {
		b.RejectionReason = &reason
		return nil
	})
}

// Assign moves a confirmed booking to assigned, binding it to an active
// inspector. The inspector pointer is set on no other path.
func (s *BookingService) Assign(ctx context.Context, actor models.Actor, id, inspectorID uuid.UUID) (*models.Booking, error) {
	if err := auth.Require(actor, auth.ResourceBookings, auth.ActionManage); err != nil {
		return nil, err
	}
	inspector, err := s.userRepo.GetByID(ctx, inspectorID)
	if err != nil {
		return nil, err
	}
	if !inspector.Active {
		return nil, &models.ValidationError{Field: "inspector_id", Message: "inspector is inactive"}
	}
	return s.transition(ctx, actor, id, models.BookingAssigned, func(b *models.Booking) error {
		b.AssignedTo = &inspector.ID
		return nil
	})
}

// Complete closes an assigned booking against the inspection record produced
// for it. The inspection must exist and reference this booking.
func (s *BookingService) Complete(ctx context.Context, actor models.Actor, id uuid.UUID, inspectionRef string) (*models.Booking, error) {
	return s.transition(ctx, actor, id, models.BookingCompleted, func(b *models.Booking) error {
		bookingID, err := s.lookupInspectionBooking(ctx, b.InspectionType, inspectionRef)
		if err != nil {
			return err
		}
		if bookingID == nil || *bookingID != b.ID {
			return &models.ValidationError{Field: "inspection_ref", Message: "inspection does not reference this booking"}
		}
		b.InspectionRef = &inspectionRef
		return nil
	})
}

func (s *BookingService) lookupInspectionBooking(ctx context.Context, inspectionType models.InspectionType, ref string) (*uuid.UUID, error) {
	switch inspectionType {
	case models.InspectionImport:
		inspection, err := s.importRepo.GetByReference(ctx, ref)
		if err != nil {
			return nil, err
		}
		return inspection.BookingID, nil
	case models.InspectionFarm:
		inspection, err := s.farmInspRepo.GetByReference(ctx, ref)
		if err != nil {
			return nil, err
		}
		return inspection.BookingID, nil
	}
	return nil, &models.ValidationError{Field: "inspection_type", Message: "unknown inspection type"}
}

// transition is the single write path for booking state. It verifies the
// actor, the lifecycle edge, applies the mutation, and persists state plus
// audit entry atomically. The repository re-checks the from-state at the
// write, so concurrent transitions out of the same state serialize to one
// winner.
func (s *BookingService) transition(ctx context.Context, actor models.Actor, id uuid.UUID, target models.BookingStatus, mutate func(*models.Booking) error) (*models.Booking, error) {
	if err := auth.Require(actor, auth.ResourceBookings, auth.ActionManage); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := booking.Status
	if !from.CanTransitionTo(target) {
		return nil, &models.InvalidTransition{
			Entity: models.EntityBooking,
			From:   string(from),
			To:     string(target),
		}
	}

	if err := mutate(booking); err != nil {
		return nil, err
	}
	booking.Status = target
	if booking.Status.AtOrPastAssignment() && booking.AssignedTo == nil {
		return nil, &models.ValidationError{Field: "assigned_inspector", Message: "an assigned inspector is required"}
	}

	entry := &models.AuditEntry{
		EntityType: models.EntityBooking,
		EntityID:   booking.ID,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		FromState:  string(from),
		ToState:    string(target),
	}
	if err := s.bookingRepo.UpdateTransition(ctx, booking, from, entry); err != nil {
		return nil, err
	}

	s.publisher.PublishStatusChanged(ctx, event.StatusChangedEvent{
		EntityType:      models.EntityBooking,
		EntityID:        booking.ID,
		ReferenceNumber: booking.ReferenceNumber,
		FromState:       string(from),
		ToState:         string(target),
		ActorID:         actor.ID,
		OccurredAt:      time.Now(),
	})

	return booking, nil
}

func validateBookingRequest(req *models.SubmitBookingRequest) error {
	if req.SubmissionToken == "" {
		return &models.ValidationError{Field: "submission_token", Message: "submission token is required"}
	}
	if req.Contact.FullName == "" {
		return &models.ValidationError{Field: "contact.full_name", Message: "full name is required"}
	}
	if req.Contact.Email == "" {
		return &models.ValidationError{Field: "contact.email", Message: "email is required"}
	}
	if req.Contact.Phone == "" {
		return &models.ValidationError{Field: "contact.phone", Message: "phone is required"}
	}
	if req.PreferredDate == "" {
		return &models.ValidationError{Field: "preferred_date", Message: "preferred date is required"}
	}
	if req.PreferredTime == "" {
		return &models.ValidationError{Field: "preferred_time", Message: "preferred time is required"}
	}
	switch req.Urgency {
	case models.UrgencyRoutine, models.UrgencyUrgent, models.UrgencyEmergency:
	default:
		return &models.ValidationError{Field: "urgency", Message: "urgency must be routine, urgent or emergency"}
	}

	switch req.InspectionType {
	case models.InspectionImport:
		if req.ImportDetails == nil {
			return &models.ValidationError{Field: "import_details", Message: "import details are required for import bookings"}
		}
		if req.ImportDetails.Commodity == "" {
			return &models.ValidationError{Field: "import_details.commodity", Message: "commodity is required"}
		}
		if req.ImportDetails.OriginCountry == "" {
			return &models.ValidationError{Field: "import_details.origin_country", Message: "origin country is required"}
		}
		if req.ImportDetails.PortOfEntry == "" {
			return &models.ValidationError{Field: "import_details.port_of_entry", Message: "port of entry is required"}
		}
		if req.ImportDetails.Quantity <= 0 {
			return &models.ValidationError{Field: "import_details.quantity", Message: "quantity must be greater than 0"}
		}
	case models.InspectionFarm:
		if req.FarmDetails == nil {
			return &models.ValidationError{Field: "farm_details", Message: "farm details are required for farm bookings"}
		}
		if req.FarmDetails.FarmName == "" {
			return &models.ValidationError{Field: "farm_details.farm_name", Message: "farm name is required"}
		}
		if req.FarmDetails.FarmLocation == "" {
			return &models.ValidationError{Field: "farm_details.farm_location", Message: "farm location is required"}
		}
		if len(req.FarmDetails.CropTypes) == 0 {
			return &models.ValidationError{Field: "farm_details.crop_types", Message: "at least one crop type is required"}
		}
	default:
		return &models.ValidationError{Field: "inspection_type", Message: "inspection type must be import or farm"}
	}
	return nil
}
