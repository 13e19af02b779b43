package models

import (
	"time"

	"gorm.io/datatypes"
)

// Property is one rental listing. Images and Amenities are owned exclusively
// and are replaced wholesale on every update.
type Property struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Title        string  `gorm:"column:title;size:255;not null" json:"title"`
	Description  *string `gorm:"column:description;type:text" json:"description"`
	PropertyType string  `gorm:"column:property_type;size:20;not null;default:apartment" json:"property_type"`
	BHKType      string  `gorm:"column:bhk_type;size:10;not null;index" json:"bhk_type"`

	Rent    float64  `gorm:"column:rent;type:decimal(10,2);not null;index" json:"rent"`
	Deposit float64  `gorm:"column:deposit;type:decimal(10,2);not null" json:"deposit"`
	Area    *float64 `gorm:"column:area;type:decimal(8,2)" json:"area"`

	Location string `gorm:"column:location;size:255;not null;index" json:"location"`

	FurnishedStatus    string `gorm:"column:furnished_status;size:20;not null;default:unfurnished" json:"furnished_status"`
	AvailabilityStatus string `gorm:"column:availability_status;size:20;not null;default:available;index" json:"availability_status"`

	Parking     bool   `gorm:"column:parking;not null;default:false" json:"parking"`
	ParkingType string `gorm:"column:parking_type;size:10;not null;default:none" json:"parking_type"`

	FloorNumber   *int    `gorm:"column:floor_number" json:"floor_number"`
	TotalFloors   *int    `gorm:"column:total_floors" json:"total_floors"`
	AgeOfProperty *int    `gorm:"column:age_of_property" json:"age_of_property"`
	Facing        *string `gorm:"column:facing;size:20" json:"facing"`
	Balcony       *int    `gorm:"column:balcony" json:"balcony"`
	Bathroom      *int    `gorm:"column:bathroom" json:"bathroom"`

	AvailableFrom *datatypes.Date `gorm:"column:available_from" json:"available_from"`

	ContactName  string `gorm:"column:contact_name;size:255" json:"contact_name"`
	ContactPhone string `gorm:"column:contact_phone;size:50" json:"contact_phone"`
	ContactEmail string `gorm:"column:contact_email;size:255" json:"contact_email"`

	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	// No ON DELETE CASCADE: children are removed explicitly by the store.
	Images    []PropertyImage   `gorm:"foreignKey:PropertyID;constraint:OnDelete:RESTRICT" json:"images"`
	Amenities []PropertyAmenity `gorm:"foreignKey:PropertyID;constraint:OnDelete:RESTRICT" json:"amenities"`
}

func (Property) TableName() string {
	return "properties"
}

// PropertyImage is an image URL shown in DisplayOrder; ties fall back to ID.
type PropertyImage struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID   uint   `gorm:"column:property_id;not null;index" json:"property_id"`
	ImageURL     string `gorm:"column:image_url;size:1024;not null" json:"image_url"`
	DisplayOrder int    `gorm:"column:display_order;not null;default:0" json:"display_order"`
}

func (PropertyImage) TableName() string {
	return "property_images"
}

type PropertyAmenity struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID uint   `gorm:"column:property_id;not null;index" json:"property_id"`
	Amenity    string `gorm:"column:amenity;size:100;not null" json:"amenity"`
}

func (PropertyAmenity) TableName() string {
	return "property_amenities"
}

// ImageURLs returns the image URLs in slice order, never nil.
func (p *Property) ImageURLs() []string {
	out := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		out = append(out, img.ImageURL)
	}
	return out
}

// AmenityNames returns the amenity labels, never nil.
func (p *Property) AmenityNames() []string {
	out := make([]string, 0, len(p.Amenities))
	for _, a := range p.Amenities {
		out = append(out, a.Amenity)
	}
	return out
}
