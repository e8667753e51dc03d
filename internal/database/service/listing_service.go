package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lib/pq"

	"github.com/motoarena/backend-go/internal/database/models"
	"github.com/motoarena/backend-go/internal/database/repository"
)

// CreateListingInput carries the fields for a new listing. The rent-only
// payload must be present exactly when Kind is RENT.
type CreateListingInput struct {
	VehicleID               uint
	Kind                    string
	Title                   string
	Description             string
	Price                   float64
	Location                string
	Features                []string
	SecurityDeposit         *float64
	MinimumRentalPeriodDays *int
}

// UpdateListingInput carries partial field changes; nil fields are untouched
type UpdateListingInput struct {
	Title                   *string
	Description             *string
	Price                   *float64
	Location                *string
	Features                []string
	SecurityDeposit         *float64
	MinimumRentalPeriodDays *int
}

// ListingService governs the listing lifecycle:
// draft → pending_review → published|rejected, rejected → pending_review on
// resubmit, and draft/published/rejected → archived (terminal).
type ListingService interface {
	Create(ctx context.Context, ownerID uint, in CreateListingInput) (*models.Listing, error)
	Get(ctx context.Context, id uint) (*models.Listing, error)
	ListOwn(ctx context.Context, ownerID uint) ([]models.Listing, error)
	ListPublished(ctx context.Context) ([]models.Listing, error)
	ListPendingReview(ctx context.Context) ([]models.Listing, error)
	Update(ctx context.Context, id, ownerID uint, in UpdateListingInput) (*models.Listing, error)
	SubmitForReview(ctx context.Context, id, ownerID uint) (*models.Listing, error)
	Approve(ctx context.Context, expertiseID, expertID uint) error
	Reject(ctx context.Context, expertiseID, expertID uint, reason, feedback *string) error
	// ReviewStats reports how many reviews sit in each decision state.
	ReviewStats(ctx context.Context) (map[string]int64, error)
	AttachReviewDocument(ctx context.Context, expertiseID, expertID uint, documentURL string) error
	Archive(ctx context.Context, id, ownerID uint) error
	Delete(ctx context.Context, id, ownerID uint) error
}

type listingService struct {
	listingRepo   repository.ListingRepository
	expertiseRepo repository.ExpertiseRepository
	vehicleRepo   repository.VehicleRepository
	logger        *slog.Logger
}

// NewListingService creates a new listing service instance
func NewListingService(
	listingRepo repository.ListingRepository,
	expertiseRepo repository.ExpertiseRepository,
	vehicleRepo repository.VehicleRepository,
	logger *slog.Logger,
) ListingService {
	return &listingService{
		listingRepo:   listingRepo,
		expertiseRepo: expertiseRepo,
		vehicleRepo:   vehicleRepo,
		logger:        logger,
	}
}

func (s *listingService) Create(ctx context.Context, ownerID uint, in CreateListingInput) (*models.Listing, error) {
	s.logger.Info("📋 [ListingService] Create attempt", "owner_id", ownerID, "vehicle_id", in.VehicleID)

	if err := validateKindPayload(in.Kind, in.SecurityDeposit, in.MinimumRentalPeriodDays); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, in.VehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if vehicle.OwnerID != ownerID {
		s.logger.Warn("⚠️ [ListingService] Listing references another user's vehicle",
			"owner_id", ownerID, "vehicle_owner_id", vehicle.OwnerID)
		return nil, ErrForbidden
	}

	listing := &models.Listing{
		OwnerID:                 ownerID,
		VehicleID:               in.VehicleID,
		Kind:                    in.Kind,
		Status:                  models.ListingStatusDraft,
		Title:                   in.Title,
		Description:             in.Description,
		Price:                   in.Price,
		Location:                in.Location,
		Features:                pq.StringArray(in.Features),
		SecurityDeposit:         in.SecurityDeposit,
		MinimumRentalPeriodDays: in.MinimumRentalPeriodDays,
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		s.logger.Error("❌ [ListingService] Failed to create listing", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [ListingService] Listing created as draft", "listing_id", listing.ID)
	return listing, nil
}

func (s *listingService) Get(ctx context.Context, id uint) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return listing, nil
}

func (s *listingService) ListOwn(ctx context.Context, ownerID uint) ([]models.Listing, error) {
	return s.listingRepo.ListByOwner(ctx, ownerID)
}

func (s *listingService) ListPublished(ctx context.Context) ([]models.Listing, error) {
	return s.listingRepo.ListByStatus(ctx, models.ListingStatusPublished)
}

func (s *listingService) ListPendingReview(ctx context.Context) ([]models.Listing, error) {
	return s.listingRepo.ListByStatus(ctx, models.ListingStatusPendingReview)
}

func (s *listingService) Update(ctx context.Context, id, ownerID uint, in UpdateListingInput) (*models.Listing, error) {
	listing, err := s.ownedListing(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if !listing.Editable() {
		s.logger.Warn("⚠️ [ListingService] Update refused in current state",
			"listing_id", id, "status", listing.Status)
		return nil, ErrInvalidState
	}

	if in.Title != nil {
		listing.Title = *in.Title
	}
	if in.Description != nil {
		listing.Description = *in.Description
	}
	if in.Price != nil {
		listing.Price = *in.Price
	}
	if in.Location != nil {
		listing.Location = *in.Location
	}
	if in.Features != nil {
		listing.Features = pq.StringArray(in.Features)
	}
	if listing.Kind == models.ListingKindRent {
		if in.SecurityDeposit != nil {
			listing.SecurityDeposit = in.SecurityDeposit
		}
		if in.MinimumRentalPeriodDays != nil {
			listing.MinimumRentalPeriodDays = in.MinimumRentalPeriodDays
		}
	} else if in.SecurityDeposit != nil || in.MinimumRentalPeriodDays != nil {
		return nil, ErrInvalidListing
	}

	if err := s.listingRepo.Save(ctx, listing); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			// The listing left an editable state between our read and the
			// write; the transition wins.
			s.logger.Warn("⚠️ [ListingService] Update lost to a concurrent transition", "listing_id", id)
			return nil, ErrInvalidState
		}
		s.logger.Error("❌ [ListingService] Failed to update listing", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [ListingService] Listing updated", "listing_id", id)
	return listing, nil
}

func (s *listingService) SubmitForReview(ctx context.Context, id, ownerID uint) (*models.Listing, error) {
	listing, err := s.ownedListing(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if !listing.Editable() {
		s.logger.Warn("⚠️ [ListingService] Submit refused in current state",
			"listing_id", id, "status", listing.Status)
		return nil, ErrInvalidState
	}

	from := []string{models.ListingStatusDraft, models.ListingStatusRejected}
	if err := s.listingRepo.SubmitForReview(ctx, id, from); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, ErrInvalidState
		}
		s.logger.Error("❌ [ListingService] Failed to submit listing", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [ListingService] Listing submitted for review", "listing_id", id)
	return s.listingRepo.FindByID(ctx, id)
}

func (s *listingService) Approve(ctx context.Context, expertiseID, expertID uint) error {
	s.logger.Info("🔎 [ListingService] Approve attempt", "expertise_id", expertiseID, "expert_id", expertID)

	err := s.expertiseRepo.Decide(ctx, expertiseID, expertID,
		models.DecisionApproved, models.ListingStatusPublished, nil, nil)
	if err != nil {
		return s.mapDecisionError(err, expertiseID)
	}

	s.logger.Info("✅ [ListingService] Listing approved and published", "expertise_id", expertiseID)
	return nil
}

func (s *listingService) Reject(ctx context.Context, expertiseID, expertID uint, reason, feedback *string) error {
	s.logger.Info("🔎 [ListingService] Reject attempt", "expertise_id", expertiseID, "expert_id", expertID)

	err := s.expertiseRepo.Decide(ctx, expertiseID, expertID,
		models.DecisionRejected, models.ListingStatusRejected, reason, feedback)
	if err != nil {
		return s.mapDecisionError(err, expertiseID)
	}

	s.logger.Info("✅ [ListingService] Listing rejected", "expertise_id", expertiseID)
	return nil
}

func (s *listingService) ReviewStats(ctx context.Context) (map[string]int64, error) {
	return s.expertiseRepo.CountByDecision(ctx)
}

func (s *listingService) AttachReviewDocument(ctx context.Context, expertiseID, expertID uint, documentURL string) error {
	if _, err := s.expertiseRepo.FindByID(ctx, expertiseID); err != nil {
		if errors.Is(err, repository.ErrExpertiseNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.expertiseRepo.AttachDocument(ctx, expertiseID, documentURL); err != nil {
		s.logger.Error("❌ [ListingService] Failed to attach review document", "error", err)
		return err
	}

	s.logger.Info("📎 [ListingService] Review document attached",
		"expertise_id", expertiseID, "expert_id", expertID)
	return nil
}

func (s *listingService) Archive(ctx context.Context, id, ownerID uint) error {
	listing, err := s.ownedListing(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if listing.Terminal() {
		return ErrInvalidState
	}

	from := []string{
		models.ListingStatusDraft,
		models.ListingStatusPendingReview,
		models.ListingStatusPublished,
		models.ListingStatusRejected,
	}
	if err := s.listingRepo.UpdateStatus(ctx, id, from, models.ListingStatusArchived); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return ErrInvalidState
		}
		s.logger.Error("❌ [ListingService] Failed to archive listing", "error", err)
		return err
	}

	s.logger.Info("✅ [ListingService] Listing archived", "listing_id", id)
	return nil
}

func (s *listingService) Delete(ctx context.Context, id, ownerID uint) error {
	if _, err := s.ownedListing(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.listingRepo.Delete(ctx, id); err != nil {
		s.logger.Error("❌ [ListingService] Failed to delete listing", "error", err)
		return err
	}

	s.logger.Info("🗑️ [ListingService] Listing deleted", "listing_id", id)
	return nil
}

// ownedListing loads the listing and enforces ownership
func (s *listingService) ownedListing(ctx context.Context, id, ownerID uint) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if listing.OwnerID != ownerID {
		s.logger.Warn("⚠️ [ListingService] Ownership violation",
			"listing_id", id, "caller_id", ownerID, "owner_id", listing.OwnerID)
		return nil, ErrForbidden
	}
	return listing, nil
}

func (s *listingService) mapDecisionError(err error, expertiseID uint) error {
	switch {
	case errors.Is(err, repository.ErrExpertiseNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrStateConflict):
		s.logger.Warn("⚠️ [ListingService] Decision refused, review not pending", "expertise_id", expertiseID)
		return ErrInvalidState
	default:
		s.logger.Error("❌ [ListingService] Failed to record decision", "error", err)
		return err
	}
}

func validateKindPayload(kind string, deposit *float64, minRental *int) error {
	switch kind {
	case models.ListingKindSale:
		if deposit != nil || minRental != nil {
			return ErrInvalidListing
		}
	case models.ListingKindRent:
		if deposit == nil || minRental == nil {
			return ErrInvalidListing
		}
	default:
		return ErrInvalidListing
	}
	return nil
}
