package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/myhome-soft/myhome/internal/server/models"
	"github.com/myhome-soft/myhome/internal/server/services"
)

type amenityInputRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
}

type createAmenitiesRequest struct {
	Amenities []amenityInputRequest `json:"amenities" binding:"required,min=1,dive"`
}

type amenityResponse struct {
	AmenityID   string  `json:"amenityId"`
	CommunityID string  `json:"communityId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func toAmenityResponse(a *models.Amenity) amenityResponse {
	return amenityResponse{
		AmenityID:   a.AmenityID,
		CommunityID: a.CommunityID,
		Name:        a.Name,
		Description: a.Description,
		Price:       a.Price,
	}
}

func (s *Server) handleCreateAmenities(c *gin.Context) {
	var req createAmenitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	inputs := make([]services.AmenityInput, 0, len(req.Amenities))
	for _, a := range req.Amenities {
		inputs = append(inputs, services.AmenityInput{Name: a.Name, Description: a.Description, Price: a.Price})
	}

	amenities, err := s.amenities.CreateAmenities(c.Request.Context(), c.Param("communityID"), inputs)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]amenityResponse, 0, len(amenities))
	for _, a := range amenities {
		out = append(out, toAmenityResponse(a))
	}
	c.JSON(http.StatusCreated, gin.H{"amenities": out})
}

func (s *Server) handleListCommunityAmenities(c *gin.Context) {
	amenities, err := s.amenities.ListAmenitiesByCommunity(c.Request.Context(), c.Param("communityID"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]amenityResponse, 0, len(amenities))
	for _, a := range amenities {
		out = append(out, toAmenityResponse(a))
	}
	c.JSON(http.StatusOK, gin.H{"amenities": out})
}

func (s *Server) handleGetAmenity(c *gin.Context) {
	amenity, err := s.amenities.GetAmenity(c.Request.Context(), c.Param("amenityID"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAmenityResponse(amenity))
}

func (s *Server) handleUpdateAmenity(c *gin.Context) {
	var req amenityInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	err := s.amenities.UpdateAmenity(c.Request.Context(), c.Param("amenityID"), services.AmenityInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteAmenity(c *gin.Context) {
	if err := s.amenities.DeleteAmenity(c.Request.Context(), c.Param("amenityID")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type bookAmenityRequest struct {
	MemberID  string    `json:"memberId" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
}

func (s *Server) handleBookAmenity(c *gin.Context) {
	var req bookAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	booking, err := s.amenities.BookAmenity(c.Request.Context(), &models.AmenityBooking{
		AmenityID: c.Param("amenityID"),
		MemberID:  req.MemberID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bookingId": booking.BookingID})
}

func (s *Server) handleDeleteBooking(c *gin.Context) {
	err := s.amenities.DeleteBooking(c.Request.Context(), c.Param("amenityID"), c.Param("bookingID"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
