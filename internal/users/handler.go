package users

import (
	"hris-backend/internal/auth"
	"hris-backend/internal/database"
	"hris-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateRoleRequest struct {
	Role models.UserRole `json:"role"`
}

type UpdateLeaveBalanceRequest struct {
	LeaveType models.LeaveType `json:"leave_type"`
	Balance   float64          `json:"balance"`
}

// GET /api/users  (sadece admin)
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("id asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}

		views := make([]auth.UserView, 0, len(users))
		for i := range users {
			views = append(views, auth.NewUserView(&users[i]))
		}
		return c.JSON(views)
	}
}

// PUT /api/users/:id/role  (sadece admin)
func UpdateRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := c.ParamsInt("id")
		if err != nil || userID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id")
		}

		var body UpdateRoleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if !models.ValidRole(body.Role) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol")
		}

		res := database.DB.Model(&models.User{}).
			Where("id = ?", userID).
			Update("role", body.Role)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rol güncellenemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		return c.JSON(fiber.Map{"success": true, "message": "Rol güncellendi"})
	}
}

// PUT /api/users/:id/leave-balance  (sadece admin)
func UpdateLeaveBalanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := c.ParamsInt("id")
		if err != nil || userID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id")
		}

		var body UpdateLeaveBalanceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if !models.ValidLeaveType(body.LeaveType) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz izin türü")
		}
		if body.Balance < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bakiye negatif olamaz")
		}

		res := database.DB.Model(&models.User{}).
			Where("id = ?", userID).
			Update(balanceColumn(body.LeaveType), body.Balance)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bakiye güncellenemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		return c.JSON(fiber.Map{"success": true, "message": "İzin bakiyesi güncellendi"})
	}
}

func balanceColumn(t models.LeaveType) string {
	return "balance_" + string(t)
}
