// Package views maps stored property rows to the JSON shape the frontend
// consumes and back. The vocabulary tables below are the only place the
// two label sets meet.
package views

import (
	"fmt"
	"strings"

	"rental-backend/models"
)

const (
	LabelAvailable   = "Available"
	LabelRented      = "Rented"
	LabelMaintenance = "Maintenance"

	LabelFullyFurnished = "Fully Furnished"
	LabelSemiFurnished  = "Semi Furnished"
	LabelUnfurnished    = "Unfurnished"
)

type vocab struct {
	storage string
	label   string
}

var availabilityVocab = []vocab{
	{models.AvailabilityAvailable, LabelAvailable},
	{models.AvailabilityOccupied, LabelRented},
	{models.AvailabilityMaintenance, LabelMaintenance},
}

var furnishedVocab = []vocab{
	{models.FurnishedFully, LabelFullyFurnished},
	{models.FurnishedSemi, LabelSemiFurnished},
	{models.FurnishedNone, LabelUnfurnished},
}

func toLabel(table []vocab, storage, fallback string) string {
	for _, v := range table {
		if v.storage == storage {
			return v.label
		}
	}
	return fallback
}

func toStorage(table []vocab, label, fallback string) string {
	for _, v := range table {
		if v.label == label {
			return v.storage
		}
	}
	return fallback
}

// AvailabilityLabel: unknown stored values read as "Maintenance".
func AvailabilityLabel(status string) string {
	return toLabel(availabilityVocab, status, LabelMaintenance)
}

// AvailabilityStatus: unknown labels are stored as "maintenance".
func AvailabilityStatus(label string) string {
	return toStorage(availabilityVocab, label, models.AvailabilityMaintenance)
}

// FurnishedLabel: unknown stored values read as "Unfurnished".
func FurnishedLabel(status string) string {
	return toLabel(furnishedVocab, status, LabelUnfurnished)
}

// FurnishedStatus: unknown labels are stored as "unfurnished".
func FurnishedStatus(label string) string {
	return toStorage(furnishedVocab, label, models.FurnishedNone)
}

// ParseAvailabilityFilter accepts either vocabulary, ignoring case, and
// returns the storage value. Unlike AvailabilityStatus it does not fall
// back: an unknown value in a filter is a client error.
func ParseAvailabilityFilter(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	for _, e := range availabilityVocab {
		if strings.EqualFold(v, e.storage) || strings.EqualFold(v, e.label) {
			return e.storage, nil
		}
	}
	return "", fmt.Errorf("unknown availability status %q", v)
}

// ParseBHKTypes canonicalizes room configuration labels ("2bhk" -> "2BHK").
func ParseBHKTypes(values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		canon, ok := models.Canonical(models.BHKTypes, v)
		if !ok {
			return nil, fmt.Errorf("unknown bhk type %q", v)
		}
		out = append(out, canon)
	}
	return out, nil
}
