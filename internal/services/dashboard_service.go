package services

import (
	"context"

	"github.com/Ezra-Tech-EB/BAHIS/internal/auth"
	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/repository"
)

// DashboardService aggregates the admin dashboard counters.
type DashboardService struct {
	bookingRepo      repository.IBookingRepository
	importRepo       repository.IImportInspectionRepository
	farmInspRepo     repository.IFarmInspectionRepository
	surveillanceRepo repository.ISurveillanceRepository
	userRepo         repository.IUserRepository
}

func NewDashboardService(
	bookingRepo repository.IBookingRepository,
	importRepo repository.IImportInspectionRepository,
	farmInspRepo repository.IFarmInspectionRepository,
	surveillanceRepo repository.ISurveillanceRepository,
	userRepo repository.IUserRepository,
) *DashboardService {
	return &DashboardService{
		bookingRepo:      bookingRepo,
		importRepo:       importRepo,
		farmInspRepo:     farmInspRepo,
		surveillanceRepo: surveillanceRepo,
		userRepo:         userRepo,
	}
}

func (s *DashboardService) Summary(ctx context.Context, actor models.Actor) (*models.DashboardSummary, error) {
	if err := auth.Require(actor, auth.ResourceAnalytics, auth.ActionRead); err != nil {
		return nil, err
	}

	summary := &models.DashboardSummary{}
	var err error

	if summary.PendingBookings, err = s.bookingRepo.CountByStatus(ctx, models.BookingPending); err != nil {
		return nil, err
	}
	if summary.ConfirmedBookings, err = s.bookingRepo.CountByStatus(ctx, models.BookingConfirmed); err != nil {
		return nil, err
	}
	if summary.AssignedBookings, err = s.bookingRepo.CountByStatus(ctx, models.BookingAssigned); err != nil {
		return nil, err
	}
	if summary.ImportInspections, err = s.importRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.FarmInspections, err = s.farmInspRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.SurveillanceRecords, err = s.surveillanceRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.ActiveInspectors, err = s.userRepo.CountActive(ctx); err != nil {
		return nil, err
	}

	return summary, nil
}
