package main

import (
	"log"
	"strings"

	"hris-backend/internal/agent"
	"hris-backend/internal/announcement"
	"hris-backend/internal/attendance"
	"hris-backend/internal/auth"
	"hris-backend/internal/config"
	"hris-backend/internal/database"
	"hris-backend/internal/leave"
	"hris-backend/internal/models"
	"hris-backend/internal/profile"
	"hris-backend/internal/status"
	"hris-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	// Agent kayıt defteri startup'ta bir kez kurulur ve enjekte edilir
	agents := agent.NewRegistry(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Public durum kontrolü
	api.Post("/status", status.CreateHandler())
	api.Get("/status", status.ListHandler())

	// Public agent endpoint'leri
	api.Post("/chat", agent.ChatHandler(agents))
	api.Post("/search", agent.SearchHandler(agents))
	api.Get("/agents/capabilities", agent.CapabilitiesHandler(agents))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Kullanıcı yönetimi (sadece admin)
	adminUsers := protected.Group("/users")
	adminUsers.Use(auth.RequireRole(models.RoleAdmin))
	adminUsers.Get("", users.ListUsersHandler())
	adminUsers.Put("/:id/role", users.UpdateRoleHandler())
	adminUsers.Put("/:id/leave-balance", users.UpdateLeaveBalanceHandler())

	// İzin yönetimi
	protected.Post("/leaves/apply", leave.ApplyHandler())
	protected.Get("/leaves/my-requests", leave.MyRequestsHandler())
	protected.Get("/leaves/balance", leave.BalanceHandler())
	protected.Get("/leaves/calendar", leave.CalendarHandler())
	protected.Get("/leaves/pending", auth.RequireRole(models.RoleManager, models.RoleAdmin), leave.PendingHandler())
	protected.Put("/leaves/:id/approve", auth.RequireRole(models.RoleManager, models.RoleAdmin), leave.ApproveHandler())
	protected.Put("/leaves/:id/reject", auth.RequireRole(models.RoleManager, models.RoleAdmin), leave.RejectHandler())
	protected.Get("/leaves/report", auth.RequireRole(models.RoleAdmin), leave.ReportHandler())
	protected.Get("/leaves/report/export", auth.RequireRole(models.RoleAdmin), leave.ReportExportHandler())

	// Mesai takibi
	protected.Post("/attendance/check-in", attendance.CheckInHandler())
	protected.Post("/attendance/check-out", attendance.CheckOutHandler())
	protected.Get("/attendance/today", attendance.TodayHandler())
	protected.Get("/attendance/my-records", attendance.MyRecordsHandler())
	protected.Get("/attendance/report", auth.RequireRole(models.RoleManager, models.RoleAdmin), attendance.ReportHandler())
	protected.Get("/attendance/report/export", auth.RequireRole(models.RoleManager, models.RoleAdmin), attendance.ReportExportHandler())

	// Profil
	protected.Get("/profile", profile.GetMyProfileHandler())
	protected.Put("/profile", profile.UpdateMyProfileHandler())
	protected.Get("/profile/:id", profile.GetProfileHandler())

	// Duyurular
	protected.Get("/announcements", announcement.ListHandler())
	protected.Post("/announcements", auth.RequireRole(models.RoleAdmin), announcement.CreateHandler())
	protected.Delete("/announcements/:id", auth.RequireRole(models.RoleAdmin), announcement.DeleteHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
