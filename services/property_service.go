package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"rental-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// propertyColumns are the scalar columns written by Create and Update.
// id and created_at are never overwritten.
var propertyColumns = []string{
	"title", "description", "property_type", "bhk_type", "rent", "deposit",
	"location", "area", "furnished_status", "availability_status", "parking",
	"parking_type", "floor_number", "total_floors", "age_of_property", "facing",
	"balcony", "bathroom", "available_from", "contact_name", "contact_phone",
	"contact_email", "updated_at",
}

// PropertyService is the query layer over properties and their child tables.
type PropertyService struct {
	DB *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{DB: db}
}

// withChildren preloads images in display order and amenities by insertion.
func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Preload("Amenities", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
}

func ensureChildren(p *models.Property) {
	if p.Images == nil {
		p.Images = []models.PropertyImage{}
	}
	if p.Amenities == nil {
		p.Amenities = []models.PropertyAmenity{}
	}
}

// ----------------------------------------------------
// READ
// ----------------------------------------------------

// ListAll returns the newest properties first, capped at MaxListRows.
func (s *PropertyService) ListAll() ([]models.Property, error) {
	return s.ListFiltered(PropertyFilter{})
}

// ListFiltered is ListAll restricted by the filter predicate.
func (s *PropertyService) ListFiltered(filter PropertyFilter) ([]models.Property, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	pred := BuildPredicate(filter)
	log.Printf("➡️ PropertyService.ListFiltered where=%q args=%v", pred.SQL(), pred.Args)

	properties := []models.Property{}
	err := withChildren(s.DB).
		Where(pred.SQL(), pred.Args...).
		Order("created_at DESC, id DESC").
		Limit(MaxListRows).
		Find(&properties).Error
	if err != nil {
		log.Printf("⬅️ PropertyService.ListFiltered error: %v", err)
		return nil, fmt.Errorf("list properties: %w", err)
	}

	for i := range properties {
		ensureChildren(&properties[i])
	}

	log.Printf("⬅️ PropertyService.ListFiltered ok: %d properties", len(properties))
	return properties, nil
}

// Search matches term against title, location and description.
func (s *PropertyService) Search(term string) ([]models.Property, error) {
	return s.ListFiltered(PropertyFilter{Search: term})
}

// GetByID returns (nil, nil) when no property has the id.
func (s *PropertyService) GetByID(id uint) (*models.Property, error) {
	log.Printf("➡️ PropertyService.GetByID id=%d", id)

	var property models.Property
	if err := withChildren(s.DB).First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⬅️ PropertyService.GetByID not found id=%d", id)
			return nil, nil
		}
		log.Printf("⬅️ PropertyService.GetByID error: %v", err)
		return nil, fmt.Errorf("get property %d: %w", id, err)
	}

	ensureChildren(&property)
	return &property, nil
}

// Locations lists the distinct stored locations, alphabetically.
func (s *PropertyService) Locations() ([]string, error) {
	locations := []string{}
	err := s.DB.Model(&models.Property{}).
		Where("location <> ''").
		Distinct().
		Order("location ASC").
		Pluck("location", &locations).Error
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

// ----------------------------------------------------
// WRITE: each operation is one transaction
// ----------------------------------------------------

// Create inserts the property row and its children and returns the new id.
// Image display order is the index in images.
func (s *PropertyService) Create(property *models.Property, images, amenities []string) (uint, error) {
	log.Printf("➡️ PropertyService.Create title=%q images=%d amenities=%d", property.Title, len(images), len(amenities))

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		property.ID = 0
		if err := tx.Omit(clause.Associations).Create(property).Error; err != nil {
			return fmt.Errorf("insert property: %w", err)
		}
		return insertChildren(tx, property.ID, images, amenities)
	})
	if err != nil {
		log.Printf("⬅️ PropertyService.Create error: %v", err)
		return 0, err
	}

	log.Printf("⬅️ PropertyService.Create ok id=%d", property.ID)
	return property.ID, nil
}

// Update replaces every scalar column and both child sets of id. Nothing is
// written unless all statements succeed.
func (s *PropertyService) Update(id uint, property *models.Property, images, amenities []string) error {
	log.Printf("➡️ PropertyService.Update id=%d images=%d amenities=%d", id, len(images), len(amenities))

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Property
		if err := tx.Select("id").First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPropertyNotFound
			}
			return fmt.Errorf("load property: %w", err)
		}

		property.ID = id
		property.UpdatedAt = time.Now()
		if err := tx.Model(&models.Property{}).
			Where("id = ?", id).
			Select(propertyColumns).
			Omit(clause.Associations).
			Updates(property).Error; err != nil {
			return fmt.Errorf("update property: %w", err)
		}

		if err := deleteChildren(tx, id); err != nil {
			return err
		}
		return insertChildren(tx, id, images, amenities)
	})

	log.Printf("⬅️ PropertyService.Update id=%d err=%v", id, err)
	return err
}

// Delete removes the children of id, then the property itself.
func (s *PropertyService) Delete(id uint) error {
	log.Printf("➡️ PropertyService.Delete id=%d", id)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, id); err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Property{})
		if result.Error != nil {
			return fmt.Errorf("delete property: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrPropertyNotFound
		}
		return nil
	})

	log.Printf("⬅️ PropertyService.Delete id=%d err=%v", id, err)
	return err
}

func deleteChildren(tx *gorm.DB, id uint) error {
	if err := tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error; err != nil {
		return fmt.Errorf("delete images: %w", err)
	}
	if err := tx.Where("property_id = ?", id).Delete(&models.PropertyAmenity{}).Error; err != nil {
		return fmt.Errorf("delete amenities: %w", err)
	}
	return nil
}

func insertChildren(tx *gorm.DB, id uint, images, amenities []string) error {
	urls := normalizeList(images)
	if len(urls) > 0 {
		rows := make([]models.PropertyImage, 0, len(urls))
		for i, u := range urls {
			rows = append(rows, models.PropertyImage{PropertyID: id, ImageURL: u, DisplayOrder: i})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert images: %w", err)
		}
	}

	names := normalizeList(amenities)
	if len(names) > 0 {
		rows := make([]models.PropertyAmenity, 0, len(names))
		for _, a := range names {
			rows = append(rows, models.PropertyAmenity{PropertyID: id, Amenity: a})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert amenities: %w", err)
		}
	}
	return nil
}

// normalizeList trims entries and drops blanks and exact duplicates,
// keeping first occurrence order.
func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
