// Package seed loads the demo listings shipped with the binary.
package seed

import (
	_ "embed"
	"fmt"
	"log"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/views"

	"gopkg.in/yaml.v3"
)

//go:embed properties.yaml
var propertiesYAML []byte

type fixture struct {
	Name         string   `yaml:"name"`
	PropertyType string   `yaml:"property_type"`
	Location     string   `yaml:"location"`
	BHK          string   `yaml:"bhk"`
	Rent         float64  `yaml:"rent"`
	Deposit      float64  `yaml:"deposit"`
	Availability string   `yaml:"availability"`
	Images       []string `yaml:"images"`
	Description  string   `yaml:"description"`
	Amenities    []string `yaml:"amenities"`
	Area         float64  `yaml:"area"`
	Furnished    string   `yaml:"furnished"`
	Parking      bool     `yaml:"parking"`
	Contact      string   `yaml:"contact"`
}

func (f fixture) input() views.PropertyInput {
	area := views.Number(f.Area)
	return views.PropertyInput{
		Name:         f.Name,
		PropertyType: f.PropertyType,
		Location:     f.Location,
		BHK:          f.BHK,
		Rent:         views.Number(f.Rent),
		Deposit:      views.Number(f.Deposit),
		Availability: f.Availability,
		Description:  f.Description,
		Area:         &area,
		Furnished:    f.Furnished,
		Parking:      views.Flag(f.Parking),
		Contact:      f.Contact,
		Images:       f.Images,
		Amenities:    f.Amenities,
	}
}

// Fixtures decodes the embedded listings.
func Fixtures() ([]views.PropertyInput, error) {
	var fixtures []fixture
	if err := yaml.Unmarshal(propertiesYAML, &fixtures); err != nil {
		return nil, fmt.Errorf("decode seed fixtures: %w", err)
	}
	out := make([]views.PropertyInput, 0, len(fixtures))
	for _, f := range fixtures {
		out = append(out, f.input())
	}
	return out, nil
}

// Properties inserts the fixtures. Without reset it does nothing when any
// property exists; with reset it deletes every property first.
func Properties(svc *services.PropertyService, reset bool) (int, error) {
	var count int64
	if err := svc.DB.Model(&models.Property{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}

	if count > 0 && !reset {
		log.Println("Properties already seeded")
		return 0, nil
	}

	if reset && count > 0 {
		var ids []uint
		if err := svc.DB.Model(&models.Property{}).Pluck("id", &ids).Error; err != nil {
			return 0, fmt.Errorf("list property ids: %w", err)
		}
		for _, id := range ids {
			if err := svc.Delete(id); err != nil {
				return 0, fmt.Errorf("reset property %d: %w", id, err)
			}
		}
		log.Printf("Removed %d existing properties", len(ids))
	}

	inputs, err := Fixtures()
	if err != nil {
		return 0, err
	}

	for _, in := range inputs {
		p, err := in.ToProperty()
		if err != nil {
			return 0, fmt.Errorf("fixture %q: %w", in.Name, err)
		}
		if _, err := svc.Create(p, in.Images, in.Amenities); err != nil {
			return 0, fmt.Errorf("seed %q: %w", in.Name, err)
		}
	}

	log.Printf("✅ %d properties seeded", len(inputs))
	return len(inputs), nil
}
