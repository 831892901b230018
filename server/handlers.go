package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	odpamsterdam "github.com/theoremus-urban-solutions/odp-amsterdam"
	"github.com/theoremus-urban-solutions/odp-amsterdam/formatter"
	"github.com/theoremus-urban-solutions/odp-amsterdam/models"
	"github.com/theoremus-urban-solutions/odp-amsterdam/utils"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type garagesRequest struct {
	Vehicle  string `form:"vehicle" validate:"omitempty,oneof=bicycle car touringcar"`
	Category string `form:"category" validate:"omitempty,oneof=garage park_and_ride"`
	Near     string `form:"near" validate:"max=64"`
}

type locationsRequest struct {
	Limit int    `form:"limit" validate:"omitempty,min=1,max=1000"`
	Type  string `form:"type" validate:"max=16"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", Version: odpamsterdam.Version})
}

func (s *Server) handleGarages(c *gin.Context) {
	var req garagesRequest
	if !s.bindQuery(c, &req) {
		return
	}

	vehicle, err := models.ParseVehicleType(req.Vehicle)
	if err != nil {
		Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	category, err := models.ParseGarageCategory(req.Category)
	if err != nil {
		Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	var lat, lon float64
	if req.Near != "" {
		if lat, lon, err = utils.ParseLatLon(req.Near); err != nil {
			Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
			return
		}
	}

	garages, err := s.src.AllGarages(c.Request.Context(), odpamsterdam.GarageFilter{Vehicle: vehicle, Category: category})
	if HandleError(c, err) {
		return
	}

	if req.Near != "" {
		c.JSON(http.StatusOK, formatter.WrapNearbyGarages(formatter.SortByDistance(garages, lat, lon), s.now()))
		return
	}
	c.JSON(http.StatusOK, formatter.WrapGarages(garages, s.now()))
}

func (s *Server) handleGarage(c *gin.Context) {
	g, err := s.src.Garage(c.Request.Context(), c.Param("id"))
	if HandleError(c, err) {
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) handleLocations(c *gin.Context) {
	var req locationsRequest
	if !s.bindQuery(c, &req) {
		return
	}

	spots, err := s.src.Locations(c.Request.Context(), req.Limit, req.Type)
	if HandleError(c, err) {
		return
	}
	c.JSON(http.StatusOK, formatter.WrapParkingSpots(spots, s.now()))
}

// bindQuery binds and validates query parameters, writing a 400 on failure.
func (s *Server) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := s.val.Struct(req); err != nil {
		Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}
