package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"rental-backend/services"
	"rental-backend/utils"
	"rental-backend/views"

	"github.com/gin-gonic/gin"
	mysql "github.com/go-sql-driver/mysql"
)

type PropertyController struct {
	PropertySvc *services.PropertyService
}

func NewPropertyController(svc *services.PropertyService) *PropertyController {
	return &PropertyController{PropertySvc: svc}
}

// ---------------------------
// Helpers
// ---------------------------

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid property ID")
		return 0, false
	}
	return uint(id), true
}

func parseRentBound(raw, name string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &v, nil
}

// parseBHKQuery accepts bhk_type as a JSON array (bhk_type=["2BHK","3BHK"])
// or as repeated plain values (bhk_type=2BHK&bhk_type=3BHK).
func parseBHKQuery(values []string) ([]string, error) {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "[") {
			var list []string
			if err := json.Unmarshal([]byte(v), &list); err != nil {
				return nil, fmt.Errorf("bhk_type must be a JSON array of strings")
			}
			out = append(out, list...)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// normalizeFilter translates UI vocabulary into storage vocabulary and
// rejects unknown enum values.
func normalizeFilter(f services.PropertyFilter) (services.PropertyFilter, error) {
	status, err := views.ParseAvailabilityFilter(f.AvailabilityStatus)
	if err != nil {
		return f, err
	}
	f.AvailabilityStatus = status

	bhk, err := views.ParseBHKTypes(f.BHKTypes)
	if err != nil {
		return f, err
	}
	f.BHKTypes = bhk

	return f, f.Validate()
}

func filterFromQuery(c *gin.Context) (services.PropertyFilter, error) {
	f := services.PropertyFilter{
		Search:             c.Query("search"),
		Location:           c.Query("location"),
		AvailabilityStatus: c.Query("availability_status"),
	}

	bhk, err := parseBHKQuery(c.QueryArray("bhk_type"))
	if err != nil {
		return f, err
	}
	f.BHKTypes = bhk

	if f.RentMin, err = parseRentBound(c.Query("rent_min"), "rent_min"); err != nil {
		return f, err
	}
	if f.RentMax, err = parseRentBound(c.Query("rent_max"), "rent_max"); err != nil {
		return f, err
	}

	return normalizeFilter(f)
}

// isClientDataError reports MySQL rejections caused by the submitted values.
func isClientDataError(err error) bool {
	var merr *mysql.MySQLError
	if !errors.As(err, &merr) {
		return false
	}
	switch merr.Number {
	case 1048, // column cannot be null
		1264, // out of range
		1366, // incorrect value
		1406, // data too long
		1452: // foreign key
		return true
	}
	return false
}

func respondStoreError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, services.ErrPropertyNotFound):
		utils.JSONError(c, http.StatusNotFound, "Property not found")
	case errors.Is(err, services.ErrInvalidFilter):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case isClientDataError(err):
		log.Printf("⚠️ %s rejected by database: %v", action, err)
		utils.JSONError(c, http.StatusBadRequest, "Invalid property data")
	default:
		log.Printf("❌ %s failed: %v", action, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to "+action)
	}
}

func bindPropertyInput(c *gin.Context) (views.PropertyInput, bool) {
	var in views.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return in, false
	}
	return in, true
}

// ---------------------------
// 1) List / filter (GET /api/properties)
// ---------------------------

func (ctrl *PropertyController) GetProperties(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	properties, err := ctrl.PropertySvc.ListFiltered(filter)
	if err != nil {
		respondStoreError(c, "fetch properties", err)
		return
	}

	c.JSON(http.StatusOK, views.FromProperties(properties))
}

// POST /api/properties/filter
func (ctrl *PropertyController) FilterProperties(c *gin.Context) {
	var filter services.PropertyFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid filter payload")
		return
	}

	filter, err := normalizeFilter(filter)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	properties, err := ctrl.PropertySvc.ListFiltered(filter)
	if err != nil {
		respondStoreError(c, "filter properties", err)
		return
	}

	c.JSON(http.StatusOK, views.FromProperties(properties))
}

// GET /api/properties/search/:term
func (ctrl *PropertyController) SearchProperties(c *gin.Context) {
	properties, err := ctrl.PropertySvc.Search(c.Param("term"))
	if err != nil {
		respondStoreError(c, "search properties", err)
		return
	}

	c.JSON(http.StatusOK, views.FromProperties(properties))
}

// GET /api/properties/locations
func (ctrl *PropertyController) GetLocations(c *gin.Context) {
	locations, err := ctrl.PropertySvc.Locations()
	if err != nil {
		respondStoreError(c, "fetch locations", err)
		return
	}

	c.JSON(http.StatusOK, locations)
}

// ---------------------------
// 2) Detail (GET /api/properties/:id)
// ---------------------------

func (ctrl *PropertyController) GetProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	property, err := ctrl.PropertySvc.GetByID(id)
	if err != nil {
		respondStoreError(c, "fetch property", err)
		return
	}
	if property == nil {
		utils.JSONError(c, http.StatusNotFound, "Property not found")
		return
	}

	c.JSON(http.StatusOK, views.FromProperty(property))
}

// ---------------------------
// 3) Create (POST /api/properties)
// ---------------------------

func (ctrl *PropertyController) CreateProperty(c *gin.Context) {
	in, ok := bindPropertyInput(c)
	if !ok {
		return
	}

	property, err := in.ToProperty()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := ctrl.PropertySvc.Create(property, in.Images, in.Amenities)
	if err != nil {
		respondStoreError(c, "create property", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      strconv.FormatUint(uint64(id), 10),
		"message": "Property created successfully",
	})
}

// ---------------------------
// 4) Full replace (PUT /api/properties/:id)
// ---------------------------

func (ctrl *PropertyController) UpdateProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	in, ok := bindPropertyInput(c)
	if !ok {
		return
	}

	property, err := in.ToProperty()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := ctrl.PropertySvc.Update(id, property, in.Images, in.Amenities); err != nil {
		respondStoreError(c, "update property", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property updated successfully"})
}

// ---------------------------
// 5) Delete (DELETE /api/properties/:id)
// ---------------------------

func (ctrl *PropertyController) DeleteProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.PropertySvc.Delete(id); err != nil {
		respondStoreError(c, "delete property", err)
		return
	}

	log.Printf("✅ Property ID %d deleted.", id)
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted successfully"})
}
