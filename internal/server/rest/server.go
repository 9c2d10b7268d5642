// Package rest exposes the HTTP API. Authentication is a bearer token in
// the Authorization header; requests without a valid token proceed as
// anonymous and are rejected only where a route requires identity.
package rest

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/myhome-soft/myhome/internal/logging"
	"github.com/myhome-soft/myhome/internal/server/config"
	"github.com/myhome-soft/myhome/internal/server/services"
)

type Server struct {
	httpServer *http.Server

	config *config.Config
	logger logging.Logger

	auth        *services.AuthService
	users       *services.UserService
	communities *services.CommunityService
	houses      *services.HouseService
	amenities   *services.AmenityService
	payments    *services.PaymentService
	documents   *services.DocumentService
}

func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	auth *services.AuthService,
	users *services.UserService,
	communities *services.CommunityService,
	houses *services.HouseService,
	amenities *services.AmenityService,
	payments *services.PaymentService,
	documents *services.DocumentService,
) *Server {
	s := &Server{
		config:      cfg,
		logger:      logger.With("component", "rest"),
		auth:        auth,
		users:       users,
		communities: communities,
		houses:      houses,
		amenities:   amenities,
		payments:    payments,
		documents:   documents,
	}

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.httpServer = &http.Server{
		Addr:    cfg.EndpointAddr,
		Handler: s.buildRouter(),
	}

	return s
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(s.bearerAuth())

	// Routes open to anonymous callers.
	router.POST("/auth/login", s.handleLogin)
	router.POST("/users", s.handleRegister)
	router.PUT("/users/:userID/email/confirm/:token", s.handleConfirmEmail)
	router.GET("/users/:userID/email/confirm-resend", s.handleResendEmailConfirm)
	router.POST("/users/password/forgot", s.handleForgotPassword)
	router.POST("/users/password/reset", s.handleResetPassword)

	authed := router.Group("/", s.requireAuth())
	{
		authed.GET("/users", s.handleListUsers)
		authed.GET("/users/:userID", s.handleGetUser)

		authed.POST("/communities", s.handleCreateCommunity)
		authed.GET("/communities", s.handleListCommunities)
		authed.GET("/communities/:communityID", s.handleGetCommunity)
		authed.DELETE("/communities/:communityID", s.handleDeleteCommunity)
		authed.GET("/communities/:communityID/houses", s.handleListCommunityHouses)
		authed.POST("/communities/:communityID/houses", s.handleAddHouses)

		// Admin membership and amenity management are restricted to the
		// community's own admins.
		adminOnly := authed.Group("/", s.communityAdminGuard())
		{
			adminOnly.GET("/communities/:communityID/admins", s.handleListCommunityAdmins)
			adminOnly.POST("/communities/:communityID/admins", s.handleAddCommunityAdmins)
			adminOnly.DELETE("/communities/:communityID/admins/:adminID", s.handleRemoveCommunityAdmin)
			adminOnly.GET("/communities/:communityID/amenities", s.handleListCommunityAmenities)
			adminOnly.POST("/communities/:communityID/amenities", s.handleCreateAmenities)
		}

		authed.GET("/houses", s.handleListHouses)
		authed.GET("/houses/:houseID", s.handleGetHouse)
		authed.DELETE("/houses/:houseID", s.handleDeleteHouse)
		authed.GET("/houses/:houseID/members", s.handleListHouseMembers)
		authed.POST("/houses/:houseID/members", s.handleAddHouseMembers)
		authed.DELETE("/houses/:houseID/members/:memberID", s.handleDeleteHouseMember)

		authed.GET("/amenities/:amenityID", s.handleGetAmenity)
		authed.PUT("/amenities/:amenityID", s.handleUpdateAmenity)
		authed.DELETE("/amenities/:amenityID", s.handleDeleteAmenity)
		authed.POST("/amenities/:amenityID/bookings", s.handleBookAmenity)
		authed.DELETE("/amenities/:amenityID/bookings/:bookingID", s.handleDeleteBooking)

		authed.POST("/payments", s.handleSchedulePayment)
		authed.GET("/payments/:paymentID", s.handleGetPayment)
		authed.GET("/members/:memberID/payments", s.handleListMemberPayments)
		authed.GET("/admins/:adminID/payments", s.handleListAdminPayments)

		authed.POST("/members/:memberID/documents", s.handleUploadDocument)
		authed.GET("/members/:memberID/documents", s.handleDownloadDocument)
		authed.DELETE("/members/:memberID/documents", s.handleDeleteDocument)
	}

	return router
}

// Run serves requests until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info(context.Background(), "http server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
