package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/config"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/db"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/handlers"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/middleware"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/models"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/pipeline"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/realtime"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/services/openai"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Project{},
		&models.Proposal{},
		&models.JobDetails{},
	); err != nil {
		log.Fatal(err)
	}

	rdb := realtime.NewRedis()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis not reachable:", err)
	}

	hub := realtime.NewHub()
	go hub.Run()

	bridge := realtime.NewBridge(rdb, hub)
	go bridge.Run(context.Background())

	ai := openai.NewService(cfg.OpenAIKey, cfg.OpenAIModel)

	status := pipeline.NewRedisPhaseStore(rdb)
	runner := pipeline.NewRunner(&pipeline.GormDetailsStore{DB: gdb}, ai, status, bridge)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	profileH := handlers.NewProfileHandler(gdb)
	jobDetailsH := handlers.NewJobDetailsHandler(gdb, runner, status)
	analyzeH := &handlers.AnalyzeHandler{AI: ai}
	proposalH := &handlers.ProposalHandler{
		DB:              gdb,
		AI:              ai,
		Runner:          runner,
		ShareKey:        cfg.ShareTokenKey,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	projectCheckH := &handlers.ProjectCheckHandler{AI: ai}
	dashboardH := handlers.NewDashboardHandler(gdb)

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/p/:token", proposalH.SharedView)

	// protected (JWT dari cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/me", authH.Me)

	// job details + pipeline
	protected.Post("/ex/job-details", jobDetailsH.Create)
	protected.Get("/ex/job-details/:id", jobDetailsH.Get)
	protected.Post("/analize-job-details", analyzeH.Analyze)

	// proposals
	protected.Post("/generate-proposal", proposalH.Generate)
	protected.Post("/refine-proposal", proposalH.Refine)
	protected.Get("/proposals", proposalH.List)
	protected.Get("/proposals/:id", proposalH.GetOne)
	protected.Patch("/proposals/:id", proposalH.Update)
	protected.Patch("/proposals/:id/status", proposalH.UpdateStatus)
	protected.Delete("/proposals/:id", proposalH.Delete)
	protected.Post("/proposals/:id/share", proposalH.Share)

	// profiles wizard
	protected.Get("/profiles", profileH.List)
	protected.Post("/profiles", profileH.Create)
	protected.Patch("/profiles/:id/default", profileH.SetDefault)
	protected.Delete("/profiles/:id", profileH.Delete)

	// project completeness check
	protected.Post("/check-project-problems", projectCheckH.Check)

	// dashboard
	protected.Get("/dashboard/stats", dashboardH.GetStats)

	// WebSocket endpoint (tanpa JWT middleware, autentikasi via query param)
	app.Get("/ws/pipeline", websocket.New(handlers.PipelineWebSocket(hub)))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
