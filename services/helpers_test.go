package services

import (
	"testing"

	"rental-backend/config"
	"rental-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDatabase(config.DBSettings{Driver: "sqlite", Path: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newListing(title, location, bhk string, rent float64) *models.Property {
	return &models.Property{
		Title:              title,
		PropertyType:       models.PropertyTypeApartment,
		BHKType:            bhk,
		Rent:               rent,
		Deposit:            rent * 2,
		Location:           location,
		FurnishedStatus:    models.FurnishedSemi,
		AvailabilityStatus: models.AvailabilityAvailable,
		ParkingType:        models.ParkingNone,
	}
}
