package services

import (
	"testing"
	"time"

	"rental-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func createListing(t *testing.T, svc *PropertyService, p *models.Property, images, amenities []string) uint {
	t.Helper()
	id, err := svc.Create(p, images, amenities)
	require.NoError(t, err)
	require.NotZero(t, id)
	return id
}

func childCounts(t *testing.T, svc *PropertyService, id uint) (int64, int64) {
	t.Helper()
	var images, amenities int64
	require.NoError(t, svc.DB.Model(&models.PropertyImage{}).Where("property_id = ?", id).Count(&images).Error)
	require.NoError(t, svc.DB.Model(&models.PropertyAmenity{}).Where("property_id = ?", id).Count(&amenities).Error)
	return images, amenities
}

func TestPropertyService_CreateKeepsImageOrder(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))

	id := createListing(t, svc, newListing("Luxury Apartment", "Delhi", "3BHK", 45000),
		[]string{"c.jpg", "a.jpg", "b.jpg"}, []string{"Gym", "Pool"})

	got, err := svc.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, []string{"c.jpg", "a.jpg", "b.jpg"}, got.ImageURLs())
	assert.Equal(t, []string{"Gym", "Pool"}, got.AmenityNames())
	for i, img := range got.Images {
		assert.Equal(t, i, img.DisplayOrder)
	}
	assert.Equal(t, "Luxury Apartment", got.Title)
	assert.Equal(t, 45000.0, got.Rent)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestPropertyService_CreateWithoutChildren(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))

	id := createListing(t, svc, newListing("Cozy Studio", "Pune", "1RK", 12000), nil, []string{})

	got, err := svc.GetByID(id)
	require.NoError(t, err)
	assert.NotNil(t, got.Images)
	assert.NotNil(t, got.Amenities)
	assert.Empty(t, got.Images)
	assert.Empty(t, got.Amenities)
}

func TestPropertyService_CreateDropsBlankAndDuplicateChildren(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))

	id := createListing(t, svc, newListing("Family Home", "Hyderabad", "2BHK", 28000),
		[]string{" a.jpg ", "", "a.jpg", "b.jpg"}, []string{"Lift", " ", "Lift"})

	got, err := svc.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, got.ImageURLs())
	assert.Equal(t, []string{"Lift"}, got.AmenityNames())
}

func TestPropertyService_GetByIDMissing(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))

	got, err := svc.GetByID(999)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestPropertyService_UpdateReplacesEverything(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))

	desc := "old description"
	existing := newListing("Old Title", "Delhi", "2BHK", 20000)
	existing.Description = &desc
	existing.Parking = true
	existing.ParkingType = models.ParkingCovered
	id := createListing(t, svc, existing, []string{"a.jpg", "b.jpg"}, []string{"Gym"})

	before, err := svc.GetByID(id)
	require.NoError(t, err)

	replacement := newListing("New Title", "Mumbai", "3BHK", 30000)
	replacement.AvailabilityStatus = models.AvailabilityOccupied
	require.NoError(t, svc.Update(id, replacement, []string{"c.jpg", "a.jpg"}, nil))

	got, err := svc.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
	assert.Equal(t, "Mumbai", got.Location)
	assert.Equal(t, "3BHK", got.BHKType)
	assert.Equal(t, 30000.0, got.Rent)
	assert.Equal(t, models.AvailabilityOccupied, got.AvailabilityStatus)
	assert.Nil(t, got.Description)
	assert.False(t, got.Parking)
	assert.Equal(t, models.ParkingNone, got.ParkingType)

	assert.Equal(t, []string{"c.jpg", "a.jpg"}, got.ImageURLs())
	assert.Empty(t, got.AmenityNames())

	assert.True(t, before.CreatedAt.Equal(got.CreatedAt), "created_at must not change")
	assert.False(t, got.UpdatedAt.Before(before.UpdatedAt))
}

func TestPropertyService_UpdateMissing(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))

	err := svc.Update(42, newListing("Ghost", "Nowhere", "1BHK", 1000), []string{"x.jpg"}, []string{"Gym"})
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	images, amenities := childCounts(t, svc, 42)
	assert.Zero(t, images)
	assert.Zero(t, amenities)
}

// failChildInsert makes sqlite abort any insert of value into table.column.
func failChildInsert(t *testing.T, svc *PropertyService, table, column, value string) {
	t.Helper()
	require.NoError(t, svc.DB.Exec(
		"CREATE TRIGGER fail_"+table+" BEFORE INSERT ON "+table+
			" WHEN NEW."+column+" = '"+value+"' BEGIN SELECT RAISE(ABORT, 'boom'); END",
	).Error)
}

func TestPropertyService_UpdateRollsBackOnChildFailure(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	id := createListing(t, svc, newListing("Old", "Delhi", "2BHK", 20000), []string{"a.jpg"}, []string{"Gym"})
	failChildInsert(t, svc, "property_images", "image_url", "bad.jpg")

	err := svc.Update(id, newListing("New", "Mumbai", "3BHK", 30000), []string{"bad.jpg"}, []string{"Pool"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert images")

	got, err := svc.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Old", got.Title)
	assert.Equal(t, "Delhi", got.Location)
	assert.Equal(t, 20000.0, got.Rent)
	assert.Equal(t, []string{"a.jpg"}, got.ImageURLs())
	assert.Equal(t, []string{"Gym"}, got.AmenityNames())
}

func TestPropertyService_UpdateRollsBackOnAmenityFailure(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	id := createListing(t, svc, newListing("Old", "Delhi", "2BHK", 20000), []string{"a.jpg"}, []string{"Gym"})
	failChildInsert(t, svc, "property_amenities", "amenity", "Bad")

	err := svc.Update(id, newListing("New", "Mumbai", "3BHK", 30000), []string{"b.jpg"}, []string{"Bad"})
	require.Error(t, err)

	got, err := svc.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Old", got.Title)
	assert.Equal(t, []string{"a.jpg"}, got.ImageURLs())
	assert.Equal(t, []string{"Gym"}, got.AmenityNames())
}

func TestPropertyService_CreateRollsBackOnChildFailure(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	failChildInsert(t, svc, "property_images", "image_url", "bad.jpg")

	_, err := svc.Create(newListing("Doomed", "Pune", "1BHK", 9000), []string{"ok.jpg", "bad.jpg"}, []string{"Lift"})
	require.Error(t, err)

	var properties, images, amenities int64
	require.NoError(t, svc.DB.Model(&models.Property{}).Count(&properties).Error)
	require.NoError(t, svc.DB.Model(&models.PropertyImage{}).Count(&images).Error)
	require.NoError(t, svc.DB.Model(&models.PropertyAmenity{}).Count(&amenities).Error)
	assert.Zero(t, properties)
	assert.Zero(t, images)
	assert.Zero(t, amenities)
}

func TestPropertyService_DeleteLeavesNoOrphans(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))

	keep := createListing(t, svc, newListing("Keep", "Pune", "1BHK", 10000), []string{"k.jpg"}, []string{"Lift"})
	gone := createListing(t, svc, newListing("Gone", "Pune", "2BHK", 15000), []string{"a.jpg", "b.jpg"}, []string{"Gym", "Pool"})

	require.NoError(t, svc.Delete(gone))

	got, err := svc.GetByID(gone)
	require.NoError(t, err)
	assert.Nil(t, got)

	images, amenities := childCounts(t, svc, gone)
	assert.Zero(t, images)
	assert.Zero(t, amenities)

	images, amenities = childCounts(t, svc, keep)
	assert.EqualValues(t, 1, images)
	assert.EqualValues(t, 1, amenities)
}

func TestPropertyService_DeleteMissing(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	assert.ErrorIs(t, svc.Delete(7), ErrPropertyNotFound)
}

func TestPropertyService_ChildRowsNeedAParent(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))

	err := svc.DB.Create(&models.PropertyImage{PropertyID: 12345, ImageURL: "orphan.jpg"}).Error
	assert.Error(t, err)
}

func seedListings(t *testing.T, svc *PropertyService) {
	t.Helper()
	villa := newListing("Villa with Garden", "Mumbai", "4BHK", 85000)
	villa.PropertyType = "villa"
	villa.AvailabilityStatus = models.AvailabilityOccupied
	createListing(t, svc, villa, []string{"v1.jpg"}, []string{"Garden"})

	desc := "Quiet street near the metro"
	studio := newListing("Cozy Studio", "Pune", "1RK", 15000)
	studio.Description = &desc
	createListing(t, svc, studio, nil, nil)

	createListing(t, svc, newListing("Family Home", "Hyderabad", "2BHK", 25000), nil, nil)
	createListing(t, svc, newListing("City Flat", "mumbai", "2BHK", 35000), nil, nil)
	createListing(t, svc, newListing("Penthouse Skyview", "Bangalore", "3BHK", 45000), nil, nil)
}

func titles(ps []models.Property) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Title)
	}
	return out
}

func TestPropertyService_ListAllMatchesEmptyFilter(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	seedListings(t, svc)

	all, err := svc.ListAll()
	require.NoError(t, err)
	filtered, err := svc.ListFiltered(PropertyFilter{})
	require.NoError(t, err)

	assert.Len(t, all, 5)
	assert.Equal(t, titles(all), titles(filtered))
	for _, p := range all {
		assert.NotNil(t, p.Images)
		assert.NotNil(t, p.Amenities)
	}
}

func TestPropertyService_ListNewestFirst(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	seedListings(t, svc)

	all, err := svc.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "Penthouse Skyview", all[0].Title)
	assert.Equal(t, "Villa with Garden", all[4].Title)
}

func TestPropertyService_ListFiltered(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	seedListings(t, svc)

	tests := []struct {
		name   string
		filter PropertyFilter
		want   []string
	}{
		{"rent range", PropertyFilter{RentMin: float(20000), RentMax: float(40000)}, []string{"City Flat", "Family Home"}},
		{"rent min only", PropertyFilter{RentMin: float(45000)}, []string{"Penthouse Skyview", "Villa with Garden"}},
		{"search lower", PropertyFilter{Search: "villa"}, []string{"Villa with Garden"}},
		{"search upper", PropertyFilter{Search: "VILLA"}, []string{"Villa with Garden"}},
		{"search description", PropertyFilter{Search: "metro"}, []string{"Cozy Studio"}},
		{"search location", PropertyFilter{Search: "bangal"}, []string{"Penthouse Skyview"}},
		{"location ignores case", PropertyFilter{Location: "MUMBAI"}, []string{"City Flat", "Villa with Garden"}},
		{"bhk set", PropertyFilter{BHKTypes: []string{"2BHK", "1rk"}}, []string{"City Flat", "Family Home", "Cozy Studio"}},
		{"availability", PropertyFilter{AvailabilityStatus: "occupied"}, []string{"Villa with Garden"}},
		{"combined", PropertyFilter{Location: "mumbai", AvailabilityStatus: "available"}, []string{"City Flat"}},
		{"no match", PropertyFilter{Search: "castle"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListFiltered(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestPropertyService_ListFilteredRejectsInvertedRange(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))

	_, err := svc.ListFiltered(PropertyFilter{RentMin: float(5000), RentMax: float(10)})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestPropertyService_ListIsCapped(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))

	rows := make([]models.Property, 0, MaxListRows+5)
	for i := 0; i < MaxListRows+5; i++ {
		rows = append(rows, *newListing("Bulk", "Delhi", "1BHK", float64(1000+i)))
	}
	require.NoError(t, svc.DB.CreateInBatches(&rows, 50).Error)

	got, err := svc.ListAll()
	require.NoError(t, err)
	assert.Len(t, got, MaxListRows)
}

func TestPropertyService_Search(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	seedListings(t, svc)

	got, err := svc.Search("Garden")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"v1.jpg"}, got[0].ImageURLs())
	assert.Equal(t, []string{"Garden"}, got[0].AmenityNames())
}

func TestPropertyService_SearchTreatsWildcardsLiterally(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	createListing(t, svc, newListing("50% off deposit", "Delhi", "1BHK", 9000), nil, nil)
	createListing(t, svc, newListing("Flat 500", "Delhi", "1BHK", 9500), nil, nil)
	createListing(t, svc, newListing("Corner_Flat", "Pune", "1BHK", 9900), nil, nil)

	tests := map[string][]string{
		"%":   {"50% off deposit"},
		"50%": {"50% off deposit"},
		"_":   {"Corner_Flat"},
		"r_f": {"Corner_Flat"},
		"50":  {"Flat 500", "50% off deposit"},
	}
	for term, want := range tests {
		got, err := svc.Search(term)
		require.NoError(t, err, term)
		assert.Equal(t, want, titles(got), term)
	}
}

func TestPropertyService_NonASCIILocation(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	createListing(t, svc, newListing("Lakeside", "Zürich", "2BHK", 30000), nil, nil)

	for _, location := range []string{"Zürich", "zürich", "ZüRICH"} {
		got, err := svc.ListFiltered(PropertyFilter{Location: location})
		require.NoError(t, err)
		assert.Equal(t, []string{"Lakeside"}, titles(got), location)
	}
}

func TestPropertyService_Locations(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	seedListings(t, svc)
	createListing(t, svc, newListing("Second Pune", "Pune", "1BHK", 9000), nil, nil)

	got, err := svc.Locations()
	require.NoError(t, err)
	assert.Equal(t, []string{"Bangalore", "Hyderabad", "Mumbai", "Pune", "mumbai"}, got)
}

func TestPropertyService_AvailableFromRoundTrip(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))

	p := newListing("Dated", "Delhi", "1BHK", 5000)
	when := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	date := datatypes.Date(when)
	p.AvailableFrom = &date
	id := createListing(t, svc, p, nil, nil)

	got, err := svc.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got.AvailableFrom)
	assert.Equal(t, "2025-03-01", time.Time(*got.AvailableFrom).Format("2006-01-02"))
}
