package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"rental-backend/models"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// PropertyView is the presentation shape of a property.
type PropertyView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	BHK          string   `json:"bhk"`
	Rent         float64  `json:"rent"`
	Deposit      float64  `json:"deposit"`
	Availability string   `json:"availability"`
	Images       []string `json:"images"`
	CreatedAt    string   `json:"createdAt"`
	Description  string   `json:"description"`
	Amenities    []string `json:"amenities"`
	Area         float64  `json:"area"`
	Furnished    string   `json:"furnished"`
	Parking      bool     `json:"parking"`
	Contact      string   `json:"contact"`

	PropertyType  string `json:"propertyType"`
	ParkingType   string `json:"parkingType"`
	FloorNumber   *int   `json:"floorNumber"`
	TotalFloors   *int   `json:"totalFloors"`
	AgeOfProperty *int   `json:"ageOfProperty"`
	Facing        string `json:"facing"`
	Balcony       *int   `json:"balcony"`
	Bathroom      *int   `json:"bathroom"`
	AvailableFrom string `json:"availableFrom"`
	ContactName   string `json:"contactName"`
	ContactEmail  string `json:"contactEmail"`
	UpdatedAt     string `json:"updatedAt"`
}

// FromProperty converts a stored row. Images keep the slice order given by
// the store; missing children become empty lists.
func FromProperty(p *models.Property) PropertyView {
	v := PropertyView{
		ID:            strconv.FormatUint(uint64(p.ID), 10),
		Name:          p.Title,
		Location:      p.Location,
		BHK:           p.BHKType,
		Rent:          p.Rent,
		Deposit:       p.Deposit,
		Availability:  AvailabilityLabel(p.AvailabilityStatus),
		Images:        p.ImageURLs(),
		Amenities:     p.AmenityNames(),
		Furnished:     FurnishedLabel(p.FurnishedStatus),
		Parking:       p.Parking,
		Contact:       p.ContactPhone,
		PropertyType:  p.PropertyType,
		ParkingType:   p.ParkingType,
		FloorNumber:   p.FloorNumber,
		TotalFloors:   p.TotalFloors,
		AgeOfProperty: p.AgeOfProperty,
		Balcony:       p.Balcony,
		Bathroom:      p.Bathroom,
		ContactName:   p.ContactName,
		ContactEmail:  p.ContactEmail,
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.Area != nil {
		v.Area = *p.Area
	}
	if p.Facing != nil {
		v.Facing = *p.Facing
	}
	if p.AvailableFrom != nil {
		v.AvailableFrom = time.Time(*p.AvailableFrom).Format(dateLayout)
	}
	if !p.CreatedAt.IsZero() {
		v.CreatedAt = p.CreatedAt.UTC().Format(dateLayout)
	}
	if !p.UpdatedAt.IsZero() {
		v.UpdatedAt = p.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return v
}

func FromProperties(ps []models.Property) []PropertyView {
	out := make([]PropertyView, 0, len(ps))
	for i := range ps {
		out = append(out, FromProperty(&ps[i]))
	}
	return out
}

// ValidationError reports a presentation payload that cannot be stored.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// PropertyInput is the presentation payload for create and update. Every
// field is written; omitted ones are stored as their defaults.
type PropertyInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	PropertyType string  `json:"propertyType"`
	BHK          string  `json:"bhk"`
	Rent         Number  `json:"rent"`
	Deposit      Number  `json:"deposit"`
	Location     string  `json:"location"`
	Area         *Number `json:"area"`
	Availability string  `json:"availability"`
	Furnished    string  `json:"furnished"`
	Parking      Flag    `json:"parking"`
	ParkingType  string  `json:"parkingType"`

	FloorNumber   *int   `json:"floorNumber"`
	TotalFloors   *int   `json:"totalFloors"`
	AgeOfProperty *int   `json:"ageOfProperty"`
	Facing        string `json:"facing"`
	Balcony       *int   `json:"balcony"`
	Bathroom      *int   `json:"bathroom"`
	AvailableFrom string `json:"availableFrom"`

	Contact      string `json:"contact"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`

	Images    []string `json:"images"`
	Amenities []string `json:"amenities"`
}

// ToProperty validates the payload and builds the storage row. Availability
// and furnishing labels never fail: unknown labels take the conservative
// storage value. An empty availability means a fresh, available listing.
func (in PropertyInput) ToProperty() (*models.Property, error) {
	p := &models.Property{
		Title:        strings.TrimSpace(in.Name),
		Location:     strings.TrimSpace(in.Location),
		Rent:         float64(in.Rent),
		Deposit:      float64(in.Deposit),
		Parking:      bool(in.Parking),
		FloorNumber:  in.FloorNumber,
		TotalFloors:  in.TotalFloors,
		Balcony:      in.Balcony,
		Bathroom:     in.Bathroom,
		ContactName:  strings.TrimSpace(in.ContactName),
		ContactPhone: strings.TrimSpace(in.Contact),
		ContactEmail: strings.TrimSpace(in.ContactEmail),

		AgeOfProperty:   in.AgeOfProperty,
		FurnishedStatus: FurnishedStatus(strings.TrimSpace(in.Furnished)),
	}

	if p.Title == "" {
		return nil, invalid("name", "is required")
	}
	if p.Location == "" {
		return nil, invalid("location", "is required")
	}

	bhk, ok := models.Canonical(models.BHKTypes, in.BHK)
	if !ok {
		return nil, invalid("bhk", "must be one of %s", strings.Join(models.BHKTypes, ", "))
	}
	p.BHKType = bhk

	if p.Rent < 0 {
		return nil, invalid("rent", "must be non-negative")
	}
	if p.Deposit < 0 {
		return nil, invalid("deposit", "must be non-negative")
	}
	if in.Area != nil {
		area := float64(*in.Area)
		if area < 0 {
			return nil, invalid("area", "must be non-negative")
		}
		p.Area = &area
	}

	if d := strings.TrimSpace(in.Description); d != "" {
		p.Description = &d
	}

	p.PropertyType = models.PropertyTypeApartment
	if t := strings.TrimSpace(in.PropertyType); t != "" {
		canon, ok := models.Canonical(models.PropertyTypes, t)
		if !ok {
			return nil, invalid("propertyType", "must be one of %s", strings.Join(models.PropertyTypes, ", "))
		}
		p.PropertyType = canon
	}

	if label := strings.TrimSpace(in.Availability); label == "" {
		p.AvailabilityStatus = models.AvailabilityAvailable
	} else {
		p.AvailabilityStatus = AvailabilityStatus(label)
	}

	p.ParkingType = models.ParkingNone
	if p.Parking {
		p.ParkingType = models.ParkingCovered
		if t := strings.TrimSpace(in.ParkingType); t != "" {
			canon, ok := models.Canonical(models.ParkingTypes, t)
			if !ok {
				return nil, invalid("parkingType", "must be one of %s", strings.Join(models.ParkingTypes, ", "))
			}
			p.ParkingType = canon
		}
	}

	if f := strings.TrimSpace(in.Facing); f != "" {
		f = strings.NewReplacer(" ", "_", "-", "_").Replace(f)
		canon, ok := models.Canonical(models.FacingDirections, f)
		if !ok {
			return nil, invalid("facing", "must be one of %s", strings.Join(models.FacingDirections, ", "))
		}
		p.Facing = &canon
	}

	if d := strings.TrimSpace(in.AvailableFrom); d != "" {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return nil, invalid("availableFrom", "must be a YYYY-MM-DD date")
		}
		date := datatypes.Date(t)
		p.AvailableFrom = &date
	}

	return p, nil
}
