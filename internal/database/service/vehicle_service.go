package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/motoarena/backend-go/internal/database/models"
	"github.com/motoarena/backend-go/internal/database/repository"
)

// VehicleService defines the interface for vehicle business logic
type VehicleService interface {
	Create(ctx context.Context, ownerID uint, vehicle *models.Vehicle) error
	Get(ctx context.Context, id uint) (*models.Vehicle, error)
	ListOwn(ctx context.Context, ownerID uint) ([]models.Vehicle, error)
	// Delete refuses while a non-archived listing still references the vehicle.
	Delete(ctx context.Context, id, ownerID uint) error
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	logger      *slog.Logger
}

// NewVehicleService creates a new vehicle service instance
func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	logger *slog.Logger,
) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

func (s *vehicleService) Create(ctx context.Context, ownerID uint, vehicle *models.Vehicle) error {
	vehicle.OwnerID = ownerID
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		s.logger.Error("❌ [VehicleService] Failed to create vehicle", "error", err)
		return err
	}

	s.logger.Info("🚗 [VehicleService] Vehicle registered", "vehicle_id", vehicle.ID, "owner_id", ownerID)
	return nil
}

func (s *vehicleService) Get(ctx context.Context, id uint) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) ListOwn(ctx context.Context, ownerID uint) ([]models.Vehicle, error) {
	return s.vehicleRepo.ListByOwner(ctx, ownerID)
}

func (s *vehicleService) Delete(ctx context.Context, id, ownerID uint) error {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return ErrNotFound
		}
		return err
	}
	if vehicle.OwnerID != ownerID {
		return ErrForbidden
	}

	// The repository checks for live listings and deletes in one
	// transaction, so a listing created after our read cannot slip past.
	if err := s.vehicleRepo.DeleteIfUnreferenced(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVehicleInUse) {
			s.logger.Warn("⚠️ [VehicleService] Delete refused, vehicle has active listings", "vehicle_id", id)
			return ErrVehicleInUse
		}
		s.logger.Error("❌ [VehicleService] Failed to delete vehicle", "error", err)
		return err
	}

	s.logger.Info("🗑️ [VehicleService] Vehicle deleted", "vehicle_id", id)
	return nil
}
