package profile

import (
	"encoding/json"

	"hris-backend/internal/auth"
	"hris-backend/internal/database"
	"hris-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfileRequest - kısmi güncelleme: sadece gönderilen (non-null)
// alanlar yazılır, gönderilmeyenler dokunulmadan kalır.
type UpdateProfileRequest struct {
	Phone            *string           `json:"phone"`
	EmergencyContact *string           `json:"emergency_contact"`
	EmergencyPhone   *string           `json:"emergency_phone"`
	Address          *string           `json:"address"`
	Department       *string           `json:"department"`
	Designation      *string           `json:"designation"`
	JoiningDate      *string           `json:"joining_date"`
	DateOfBirth      *string           `json:"date_of_birth"`
	BloodGroup       *string           `json:"blood_group"`
	Skills           []string          `json:"skills"`
	Documents        map[string]string `json:"documents"` // {doküman adı: base64 içerik}
	ProfilePhoto     *string           `json:"profile_photo"`
}

type ProfileResponse struct {
	ID               uint              `json:"id"`
	Username         string            `json:"username"`
	Email            string            `json:"email"`
	Role             models.UserRole   `json:"role"`
	Phone            *string           `json:"phone"`
	EmergencyContact *string           `json:"emergency_contact"`
	EmergencyPhone   *string           `json:"emergency_phone"`
	Address          *string           `json:"address"`
	Department       *string           `json:"department"`
	Designation      *string           `json:"designation"`
	JoiningDate      *string           `json:"joining_date"`
	DateOfBirth      *string           `json:"date_of_birth"`
	BloodGroup       *string           `json:"blood_group"`
	Skills           []string          `json:"skills"`
	Documents        map[string]string `json:"documents"`
	ProfilePhoto     *string           `json:"profile_photo"`
}

func userToProfile(u *models.User) ProfileResponse {
	var skills []string
	if u.Skills != "" && u.Skills != "null" {
		_ = json.Unmarshal([]byte(u.Skills), &skills)
	}

	var documents map[string]string
	if u.Documents != "" && u.Documents != "null" {
		_ = json.Unmarshal([]byte(u.Documents), &documents)
	}

	return ProfileResponse{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		Role:             u.Role,
		Phone:            u.Phone,
		EmergencyContact: u.EmergencyContact,
		EmergencyPhone:   u.EmergencyPhone,
		Address:          u.Address,
		Department:       u.Department,
		Designation:      u.Designation,
		JoiningDate:      u.JoiningDate,
		DateOfBirth:      u.DateOfBirth,
		BloodGroup:       u.BloodGroup,
		Skills:           skills,
		Documents:        documents,
		ProfilePhoto:     u.ProfilePhoto,
	}
}

// GET /api/profile - kendi profilin
func GetMyProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}
		return c.JSON(userToProfile(user))
	}
}

// GET /api/profile/:id - manager/admin herkesi, çalışan sadece kendini görebilir
func GetProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		userID, err := c.ParamsInt("id")
		if err != nil || userID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id")
		}

		if caller.Role != models.RoleManager && caller.Role != models.RoleAdmin && caller.ID != uint(userID) {
			return fiber.NewError(fiber.StatusForbidden, "Başka kullanıcıların profilini göremezsiniz")
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		return c.JSON(userToProfile(&user))
	}
}

// PUT /api/profile - kendi profilini kısmi güncelle
func UpdateMyProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body UpdateProfileRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		updates := map[string]interface{}{}
		if body.Phone != nil {
			updates["phone"] = *body.Phone
		}
		if body.EmergencyContact != nil {
			updates["emergency_contact"] = *body.EmergencyContact
		}
		if body.EmergencyPhone != nil {
			updates["emergency_phone"] = *body.EmergencyPhone
		}
		if body.Address != nil {
			updates["address"] = *body.Address
		}
		if body.Department != nil {
			updates["department"] = *body.Department
		}
		if body.Designation != nil {
			updates["designation"] = *body.Designation
		}
		if body.JoiningDate != nil {
			updates["joining_date"] = *body.JoiningDate
		}
		if body.DateOfBirth != nil {
			updates["date_of_birth"] = *body.DateOfBirth
		}
		if body.BloodGroup != nil {
			updates["blood_group"] = *body.BloodGroup
		}
		if body.Skills != nil {
			b, _ := json.Marshal(body.Skills)
			updates["skills"] = string(b)
		}
		if body.Documents != nil {
			b, _ := json.Marshal(body.Documents)
			updates["documents"] = string(b)
		}
		if body.ProfilePhoto != nil {
			updates["profile_photo"] = *body.ProfilePhoto
		}

		if len(updates) > 0 {
			if err := database.DB.Model(&models.User{}).
				Where("id = ?", user.ID).
				Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Profil güncellenemedi")
			}
		}

		var updated models.User
		if err := database.DB.First(&updated, user.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Profil okunamadı")
		}

		return c.JSON(userToProfile(&updated))
	}
}
