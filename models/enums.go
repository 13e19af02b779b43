package models

import "strings"

// Storage vocabulary. Presentation labels live in the views package.
const (
	AvailabilityAvailable   = "available"
	AvailabilityOccupied    = "occupied"
	AvailabilityMaintenance = "maintenance"

	FurnishedFully = "fully_furnished"
	FurnishedSemi  = "semi_furnished"
	FurnishedNone  = "unfurnished"

	ParkingCovered = "covered"
	ParkingOpen    = "open"
	ParkingNone    = "none"

	PropertyTypeApartment = "apartment"
)

var PropertyTypes = []string{"apartment", "house", "villa", "studio", "penthouse"}

var BHKTypes = []string{"1RK", "1BHK", "2BHK", "3BHK", "4BHK", "5BHK+"}

var ParkingTypes = []string{ParkingCovered, ParkingOpen, ParkingNone}

var FacingDirections = []string{
	"north", "south", "east", "west",
	"north_east", "north_west", "south_east", "south_west",
}

var AvailabilityStatuses = []string{AvailabilityAvailable, AvailabilityOccupied, AvailabilityMaintenance}

// Canonical returns the member of set equal to v ignoring case and
// surrounding space, and false when there is none.
func Canonical(set []string, v string) (string, bool) {
	v = strings.TrimSpace(v)
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return s, true
		}
	}
	return "", false
}
