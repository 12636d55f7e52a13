package status

import (
	"time"

	"hris-backend/internal/database"
	"hris-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateStatusCheckRequest struct {
	ClientName string `json:"client_name"`
}

type StatusCheckResponse struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// POST /api/status  (public)
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStatusCheckRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.ClientName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "client_name zorunlu")
		}

		check := models.StatusCheck{
			ID:         uuid.NewString(),
			ClientName: body.ClientName,
			Timestamp:  time.Now().UTC(),
		}

		if err := database.DB.Create(&check).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Durum kaydı oluşturulamadı")
		}

		return c.JSON(StatusCheckResponse(check))
	}
}

// GET /api/status  (public)
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var checks []models.StatusCheck
		if err := database.DB.Order("timestamp desc").Limit(1000).Find(&checks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Durum kayıtları listelenemedi")
		}

		result := make([]StatusCheckResponse, 0, len(checks))
		for _, ch := range checks {
			result = append(result, StatusCheckResponse(ch))
		}
		return c.JSON(result)
	}
}
