package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myhome-soft/myhome/internal/server/models"
)

type createCommunityRequest struct {
	Name     string `json:"name" binding:"required"`
	District string `json:"district" binding:"required"`
}

type communityResponse struct {
	CommunityID string `json:"communityId"`
	Name        string `json:"name"`
	District    string `json:"district"`
}

func toCommunityResponse(c *models.Community) communityResponse {
	return communityResponse{
		CommunityID: c.CommunityID,
		Name:        c.Name,
		District:    c.District,
	}
}

func (s *Server) handleCreateCommunity(c *gin.Context) {
	var req createCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	community, err := s.communities.CreateCommunity(c.Request.Context(), req.Name, req.District, c.GetString(ctxUserIDKey))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCommunityResponse(community))
}

func (s *Server) handleListCommunities(c *gin.Context) {
	limit, offset := pagination(c)

	communities, err := s.communities.ListCommunities(c.Request.Context(), limit, offset)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]communityResponse, 0, len(communities))
	for _, community := range communities {
		out = append(out, toCommunityResponse(community))
	}
	c.JSON(http.StatusOK, gin.H{"communities": out})
}

func (s *Server) handleGetCommunity(c *gin.Context) {
	community, err := s.communities.GetCommunity(c.Request.Context(), c.Param("communityID"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommunityResponse(community))
}

func (s *Server) handleDeleteCommunity(c *gin.Context) {
	if err := s.communities.DeleteCommunity(c.Request.Context(), c.Param("communityID")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addAdminsRequest struct {
	Admins []string `json:"admins" binding:"required,min=1"`
}

func (s *Server) handleAddCommunityAdmins(c *gin.Context) {
	var req addAdminsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if err := s.communities.AddAdmins(c.Request.Context(), c.Param("communityID"), req.Admins); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListCommunityAdmins(c *gin.Context) {
	admins, err := s.communities.FindCommunityAdmins(c.Request.Context(), c.Param("communityID"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]userResponse, 0, len(admins))
	for _, admin := range admins {
		out = append(out, toUserResponse(admin))
	}
	c.JSON(http.StatusOK, gin.H{"admins": out})
}

func (s *Server) handleRemoveCommunityAdmin(c *gin.Context) {
	err := s.communities.RemoveAdmin(c.Request.Context(), c.Param("communityID"), c.Param("adminID"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
