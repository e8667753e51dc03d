package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/motoarena/backend-go/internal/database/models"
)

// setupTestDB opens an isolated in-memory database. pq.StringArray round-trips
// through its text encoding on sqlite, so the listing tables work here too.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.ActionToken{},
		&models.Vehicle{},
		&models.Listing{},
		&models.Expertise{},
	))

	return db
}

var userSeq int

// seedUser inserts a confirmed account and returns it
func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	userSeq++
	user := &models.User{
		Username:       fmt.Sprintf("user%d", userSeq),
		Email:          fmt.Sprintf("user%d@example.com", userSeq),
		Password:       "hashed-password",
		Role:           models.RoleMember,
		EmailConfirmed: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedVehicle(t *testing.T, db *gorm.DB, ownerID uint) *models.Vehicle {
	t.Helper()

	vehicle := &models.Vehicle{
		OwnerID: ownerID,
		Make:    "Yamaha",
		Model:   "MT-07",
		Year:    2019,
		Mileage: 18000,
	}
	require.NoError(t, db.Create(vehicle).Error)
	return vehicle
}

func seedListing(t *testing.T, db *gorm.DB, ownerID, vehicleID uint, status string) *models.Listing {
	t.Helper()

	listing := &models.Listing{
		OwnerID:   ownerID,
		VehicleID: vehicleID,
		Kind:      models.ListingKindSale,
		Status:    status,
		Title:     "2019 Yamaha MT-07",
		Price:     6200,
		Location:  "Ankara",
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}
