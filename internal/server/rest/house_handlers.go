package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myhome-soft/myhome/internal/server/models"
)

type addHousesRequest struct {
	Names []string `json:"names" binding:"required,min=1"`
}

type houseResponse struct {
	HouseID     string `json:"houseId"`
	CommunityID string `json:"communityId"`
	Name        string `json:"name"`
}

func toHouseResponse(h *models.CommunityHouse) houseResponse {
	return houseResponse{HouseID: h.HouseID, CommunityID: h.CommunityID, Name: h.Name}
}

func (s *Server) handleAddHouses(c *gin.Context) {
	var req addHousesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	houses, err := s.houses.AddHouses(c.Request.Context(), c.Param("communityID"), req.Names)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]houseResponse, 0, len(houses))
	for _, h := range houses {
		out = append(out, toHouseResponse(h))
	}
	c.JSON(http.StatusCreated, gin.H{"houses": out})
}

func (s *Server) handleListCommunityHouses(c *gin.Context) {
	houses, err := s.houses.ListHousesByCommunity(c.Request.Context(), c.Param("communityID"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]houseResponse, 0, len(houses))
	for _, h := range houses {
		out = append(out, toHouseResponse(h))
	}
	c.JSON(http.StatusOK, gin.H{"houses": out})
}

func (s *Server) handleListHouses(c *gin.Context) {
	limit, offset := pagination(c)

	houses, err := s.houses.ListHouses(c.Request.Context(), limit, offset)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]houseResponse, 0, len(houses))
	for _, h := range houses {
		out = append(out, toHouseResponse(h))
	}
	c.JSON(http.StatusOK, gin.H{"houses": out})
}

func (s *Server) handleGetHouse(c *gin.Context) {
	house, err := s.houses.GetHouse(c.Request.Context(), c.Param("houseID"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHouseResponse(house))
}

func (s *Server) handleDeleteHouse(c *gin.Context) {
	if err := s.houses.DeleteHouse(c.Request.Context(), c.Param("houseID")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addMembersRequest struct {
	Names []string `json:"names" binding:"required,min=1"`
}

type memberResponse struct {
	MemberID string `json:"memberId"`
	HouseID  string `json:"houseId"`
	Name     string `json:"name"`
}

func toMemberResponse(m *models.HouseMember) memberResponse {
	return memberResponse{MemberID: m.MemberID, HouseID: m.HouseID, Name: m.Name}
}

func (s *Server) handleAddHouseMembers(c *gin.Context) {
	var req addMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	members, err := s.houses.AddMembers(c.Request.Context(), c.Param("houseID"), req.Names)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	c.JSON(http.StatusCreated, gin.H{"members": out})
}

func (s *Server) handleListHouseMembers(c *gin.Context) {
	members, err := s.houses.ListMembers(c.Request.Context(), c.Param("houseID"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	c.JSON(http.StatusOK, gin.H{"members": out})
}

func (s *Server) handleDeleteHouseMember(c *gin.Context) {
	err := s.houses.DeleteMember(c.Request.Context(), c.Param("houseID"), c.Param("memberID"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
