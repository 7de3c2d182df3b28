package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"anoa.com/charityhub/internal/auth"
	"anoa.com/charityhub/internal/config"
	"anoa.com/charityhub/internal/entity"
	"anoa.com/charityhub/internal/middleware"
	"anoa.com/charityhub/pkg/ratelimiter"
	"anoa.com/charityhub/pkg/storage"
	"anoa.com/charityhub/pkg/validator"

	adminHttp "anoa.com/charityhub/internal/modules/admin/delivery/http"
	adminService "anoa.com/charityhub/internal/modules/admin/service"

	campaignHttp "anoa.com/charityhub/internal/modules/campaign/delivery/http"
	campaignRepo "anoa.com/charityhub/internal/modules/campaign/repository"
	campaignService "anoa.com/charityhub/internal/modules/campaign/service"

	donationHttp "anoa.com/charityhub/internal/modules/donation/delivery/http"
	donationRepo "anoa.com/charityhub/internal/modules/donation/repository"
	donationService "anoa.com/charityhub/internal/modules/donation/service"

	eventHttp "anoa.com/charityhub/internal/modules/event/delivery/http"
	eventRepo "anoa.com/charityhub/internal/modules/event/repository"
	eventService "anoa.com/charityhub/internal/modules/event/service"

	feedHttp "anoa.com/charityhub/internal/modules/feed/delivery/http"
	feedService "anoa.com/charityhub/internal/modules/feed/service"

	fundUsageHttp "anoa.com/charityhub/internal/modules/fundusage/delivery/http"
	fundUsageRepo "anoa.com/charityhub/internal/modules/fundusage/repository"
	fundUsageService "anoa.com/charityhub/internal/modules/fundusage/service"

	reportHttp "anoa.com/charityhub/internal/modules/report/delivery/http"
	reportService "anoa.com/charityhub/internal/modules/report/service"

	searchService "anoa.com/charityhub/internal/modules/search/service"

	statHttp "anoa.com/charityhub/internal/modules/stat/delivery/http"
	statRepo "anoa.com/charityhub/internal/modules/stat/repository"
	statService "anoa.com/charityhub/internal/modules/stat/service"

	userHttp "anoa.com/charityhub/internal/modules/user/delivery/http"
	userRepo "anoa.com/charityhub/internal/modules/user/repository"
	userService "anoa.com/charityhub/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	liveDonationsPath = "/api/admin/donations/live"
	loginRateScope    = "login"
)

// Deps are the process-wide resources the server wires into its modules.
// Redis, Meili and Storage are optional.
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Meili   meilisearch.ServiceManager
	Storage storage.ImageStorage
	Tokens  *auth.TokenManager
}

type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	campaigns  campaignService.CampaignService
	searchOn   bool
}

func NewServer(deps Deps) *Server {
	validator.RegisterCustomValidations()

	users := userRepo.NewUserRepository(deps.DB)

	var search campaignService.SearchIndex
	if deps.Meili != nil {
		search = searchService.NewCampaignSearch(deps.Meili)
	}

	var feedSvc feedService.FeedService
	var publisher donationService.Publisher
	if deps.Redis != nil {
		feedSvc = feedService.NewFeedService(deps.Redis)
		publisher = feedSvc
	}

	authSvc := userService.NewAuthService(users, deps.Tokens)
	authHandler := userHttp.NewAuthHandler(authSvc)

	adminSvc := adminService.NewAdminService(users)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	campaignSvc := campaignService.NewCampaignService(campaignRepo.NewCampaignRepository(deps.DB), deps.Storage, search)
	campaignHandler := campaignHttp.NewCampaignHandler(campaignSvc)

	donationSvc := donationService.NewDonationService(donationRepo.NewDonationRepository(deps.DB), publisher)
	donationHandler := donationHttp.NewDonationHandler(donationSvc)

	eventSvc := eventService.NewEventService(eventRepo.NewEventRepository(deps.DB), users)
	eventHandler := eventHttp.NewEventHandler(eventSvc)

	fundUsageSvc := fundUsageService.NewFundUsageService(fundUsageRepo.NewFundUsageRepository(deps.DB))
	fundUsageHandler := fundUsageHttp.NewFundUsageHandler(fundUsageSvc)

	reportHandler := reportHttp.NewReportHandler(reportService.NewReportService(campaignSvc, fundUsageSvc))

	statHandler := statHttp.NewStatHandler(statService.NewStatService(statRepo.NewStatRepository(deps.DB)))

	feedHandler := feedHttp.NewFeedHandler(feedSvc, deps.Config.AllowedOrigins)

	router := gin.New()

	setupCORS(router, deps.Config.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(liveDonationsPath))

	authMiddleware := middleware.NewAuthMiddleware(deps.Tokens)

	api := router.Group("/api")

	// Public routes (no auth required)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		loginHandlers := []gin.HandlerFunc{authHandler.Login}
		if deps.Redis != nil && deps.Config.LoginRateLimit > 0 {
			throttle := middleware.RateLimit(ratelimiter.New(deps.Redis), loginRateScope, deps.Config.LoginRateLimit, deps.Config.LoginRateWindow)
			loginHandlers = append([]gin.HandlerFunc{throttle}, loginHandlers...)
		}
		authGroup.POST("/login", loginHandlers...)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/campaigns", campaignHandler.ListCampaigns)
		protected.GET("/campaigns/search", campaignHandler.SearchCampaigns)

		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireRole(entity.RoleAdmin))
		{
			adminGroup.GET("/stats", statHandler.AdminStats)
			adminGroup.GET("/recent-donations", donationHandler.RecentDonations)
			adminGroup.GET("/donations/live", feedHandler.LiveDonations)

			adminGroup.GET("/users", adminHandler.GetAllUsers)
			adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
			adminGroup.GET("/volunteers", adminHandler.GetVolunteers)

			adminGroup.POST("/campaigns", campaignHandler.CreateCampaign)
			adminGroup.PATCH("/campaigns/:id", campaignHandler.UpdateCampaign)
			adminGroup.DELETE("/campaigns/:id", campaignHandler.DeleteCampaign)
			adminGroup.PUT("/campaigns/:id/cover", campaignHandler.UploadCover)
			adminGroup.GET("/campaigns/:id/donations", donationHandler.CampaignDonations)

			adminGroup.GET("/events", eventHandler.ListEvents)
			adminGroup.POST("/events", eventHandler.CreateEvent)
			adminGroup.PATCH("/events/:id", eventHandler.UpdateEvent)
			adminGroup.DELETE("/events/:id", eventHandler.DeleteEvent)
			adminGroup.POST("/volunteer-assignments", eventHandler.AssignVolunteer)
			adminGroup.DELETE("/volunteer-assignments/:id", eventHandler.UnassignVolunteer)

			adminGroup.GET("/fund-usage", fundUsageHandler.ListFundUsage)
			adminGroup.POST("/fund-usage", fundUsageHandler.CreateFundUsage)
			adminGroup.GET("/fund-usage/summary", fundUsageHandler.Summary)

			adminGroup.GET("/reports/campaigns/csv", reportHandler.CampaignsCSV)
			adminGroup.GET("/reports/fund-usage/csv", reportHandler.FundUsageCSV)
		}

		donorGroup := protected.Group("/donor")
		donorGroup.Use(authMiddleware.RequireRole(entity.RoleDonor))
		{
			donorGroup.GET("/stats", statHandler.DonorStats)
			donorGroup.GET("/donations", donationHandler.MyDonations)
			donorGroup.POST("/donations", donationHandler.CreateDonation)
			donorGroup.GET("/receipt/:id/pdf", donationHandler.Receipt)
		}

		volunteerGroup := protected.Group("/volunteer")
		volunteerGroup.Use(authMiddleware.RequireRole(entity.RoleVolunteer))
		{
			volunteerGroup.GET("/stats", statHandler.VolunteerStats)
			volunteerGroup.GET("/my-events", eventHandler.MyEvents)
		}
	}

	return &Server{
		engine:    router,
		campaigns: campaignSvc,
		searchOn:  search != nil,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Campaigns exposes the campaign service for background jobs.
func (s *Server) Campaigns() campaignService.CampaignService {
	return s.campaigns
}

func (s *Server) SearchEnabled() bool {
	return s.searchOn
}

// Run serves on addr until Shutdown is called.
func (s *Server) Run(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zap.L().Info("http server listening", zap.String("addr", addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
