package announcement

import (
	"encoding/json"
	"time"

	"hris-backend/internal/auth"
	"hris-backend/internal/database"
	"hris-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateAnnouncementRequest struct {
	Title       string                      `json:"title"`
	Content     string                      `json:"content"`
	Priority    models.AnnouncementPriority `json:"priority"`     // boşsa normal
	TargetRoles []models.UserRole           `json:"target_roles"` // boşsa herkese görünür
}

type AnnouncementResponse struct {
	ID            uint                        `json:"id"`
	Title         string                      `json:"title"`
	Content       string                      `json:"content"`
	Priority      models.AnnouncementPriority `json:"priority"`
	TargetRoles   []models.UserRole           `json:"target_roles"`
	CreatedBy     uint                        `json:"created_by"`
	CreatedByName string                      `json:"created_by_name"`
	CreatedAt     time.Time                   `json:"created_at"`
	IsActive      bool                        `json:"is_active"`
}

func parseTargetRoles(raw string) []models.UserRole {
	if raw == "" || raw == "null" {
		return nil
	}
	var roles []models.UserRole
	if err := json.Unmarshal([]byte(raw), &roles); err != nil {
		return nil
	}
	return roles
}

func toResponse(a *models.Announcement, creatorName string) AnnouncementResponse {
	return AnnouncementResponse{
		ID:            a.ID,
		Title:         a.Title,
		Content:       a.Content,
		Priority:      a.Priority,
		TargetRoles:   parseTargetRoles(a.TargetRoles),
		CreatedBy:     a.CreatedBy,
		CreatedByName: creatorName,
		CreatedAt:     a.CreatedAt,
		IsActive:      a.IsActive,
	}
}

// POST /api/announcements  (sadece admin)
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateAnnouncementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Title == "" || body.Content == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Başlık ve içerik zorunlu")
		}

		if body.Priority == "" {
			body.Priority = models.PriorityNormal
		}
		if !models.ValidPriority(body.Priority) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz öncelik")
		}

		for _, r := range body.TargetRoles {
			if !models.ValidRole(r) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hedef rol")
			}
		}

		targetRoles := "null"
		if len(body.TargetRoles) > 0 {
			b, _ := json.Marshal(body.TargetRoles)
			targetRoles = string(b)
		}

		ann := models.Announcement{
			Title:       body.Title,
			Content:     body.Content,
			Priority:    body.Priority,
			TargetRoles: targetRoles,
			CreatedBy:   user.ID,
			IsActive:    true,
		}

		if err := database.DB.Create(&ann).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Duyuru oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&ann, user.Username))
	}
}

// GET /api/announcements - sadece çağıranın rolüne görünür duyurular
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var anns []models.Announcement
		if err := database.DB.
			Where("is_active = ?", true).
			Order("created_at desc").
			Find(&anns).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Duyurular listelenemedi")
		}

		var creators []models.User
		database.DB.Select("id", "username").Find(&creators)
		names := make(map[uint]string, len(creators))
		for _, u := range creators {
			names[u.ID] = u.Username
		}

		result := make([]AnnouncementResponse, 0, len(anns))
		for i := range anns {
			roles := parseTargetRoles(anns[i].TargetRoles)

			// Hedef rol yoksa herkes, varsa sadece listedeki roller görür
			visible := len(roles) == 0
			for _, r := range roles {
				if r == user.Role {
					visible = true
					break
				}
			}
			if !visible {
				continue
			}

			creatorName := names[anns[i].CreatedBy]
			if creatorName == "" {
				creatorName = "System"
			}
			result = append(result, toResponse(&anns[i], creatorName))
		}

		return c.JSON(result)
	}
}

// DELETE /api/announcements/:id  (sadece admin) - soft delete
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		annID, err := c.ParamsInt("id")
		if err != nil || annID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz duyuru id")
		}

		res := database.DB.Model(&models.Announcement{}).
			Where("id = ?", annID).
			Update("is_active", false)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Duyuru silinemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Duyuru bulunamadı")
		}

		return c.JSON(fiber.Map{"success": true, "message": "Duyuru silindi"})
	}
}
