package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/motoarena/backend-go/internal/database/models"
)

// VehicleRepository defines the interface for vehicle data operations
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	FindByID(ctx context.Context, id uint) (*models.Vehicle, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Vehicle, error)
	// DeleteIfUnreferenced deletes the vehicle unless a non-archived listing
	// still references it. The check and the delete run in one transaction,
	// so a listing created in between cannot slip past the guard. Fails with
	// ErrVehicleInUse when a live listing holds the vehicle.
	DeleteIfUnreferenced(ctx context.Context, id uint) error
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository instance
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).First(&vehicle, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&vehicles).Error
	return vehicles, err
}

func (r *vehicleRepository) DeleteIfUnreferenced(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active int64
		err := tx.Model(&models.Listing{}).
			Where("vehicle_id = ? AND status <> ?", id, models.ListingStatusArchived).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrVehicleInUse
		}
		return tx.Delete(&models.Vehicle{}, id).Error
	})
}

// Repository errors
var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrVehicleInUse    = errors.New("vehicle is referenced by a live listing")
)
