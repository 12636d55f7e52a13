package leave

import (
	"strings"
	"time"

	"hris-backend/internal/auth"
	"hris-backend/internal/database"
	"hris-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type ApplyLeaveRequest struct {
	LeaveType models.LeaveType `json:"leave_type"` // cl, el, sl, wfh, compensatory
	StartDate string           `json:"start_date"` // "2025-12-09"
	EndDate   string           `json:"end_date"`
	Reason    string           `json:"reason"`
}

type LeaveActionRequest struct {
	Comments *string `json:"comments"`
}

type LeaveResponse struct {
	ID           uint               `json:"id"`
	EmployeeID   uint               `json:"employee_id"`
	EmployeeName string             `json:"employee_name"`
	LeaveType    models.LeaveType   `json:"leave_type"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	DaysCount    float64            `json:"days_count"`
	Reason       string             `json:"reason"`
	Status       models.LeaveStatus `json:"status"`
	AppliedDate  time.Time          `json:"applied_date"`
	ReviewedBy   *uint              `json:"reviewed_by"`
	ReviewedDate *time.Time         `json:"reviewed_date"`
	Comments     *string            `json:"comments"`
}

// CalculateDays: başlangıç ve bitiş dahil gün sayısı
func CalculateDays(startDate, endDate string) (float64, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz başlangıç tarihi")
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz bitiş tarihi")
	}
	if end.Before(start) {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Bitiş tarihi başlangıçtan önce olamaz")
	}
	return end.Sub(start).Hours()/24 + 1, nil
}

func leaveToResponse(l *models.LeaveRequest, employeeName string) LeaveResponse {
	return LeaveResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: employeeName,
		LeaveType:    l.LeaveType,
		StartDate:    l.StartDate,
		EndDate:      l.EndDate,
		DaysCount:    l.DaysCount,
		Reason:       l.Reason,
		Status:       l.Status,
		AppliedDate:  l.AppliedDate,
		ReviewedBy:   l.ReviewedBy,
		ReviewedDate: l.ReviewedDate,
		Comments:     l.Comments,
	}
}

// usernameMap: raporlarda isim çözmek için tüm kullanıcıları tek sorguda çeker
func usernameMap() map[uint]string {
	var users []models.User
	database.DB.Select("id", "username").Find(&users)

	m := make(map[uint]string, len(users))
	for _, u := range users {
		m[u.ID] = u.Username
	}
	return m
}

// POST /api/leaves/apply
func ApplyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body ApplyLeaveRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if !models.ValidLeaveType(body.LeaveType) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz izin türü")
		}

		days, err := CalculateDays(body.StartDate, body.EndDate)
		if err != nil {
			return err
		}

		// Bakiye kontrolü başvuru anında yapılır
		if user.LeaveBalances.Get(body.LeaveType) < days {
			return fiber.NewError(fiber.StatusBadRequest,
				"Yetersiz "+strings.ToUpper(string(body.LeaveType))+" bakiyesi")
		}

		req := models.LeaveRequest{
			EmployeeID:  user.ID,
			LeaveType:   body.LeaveType,
			StartDate:   body.StartDate,
			EndDate:     body.EndDate,
			DaysCount:   days,
			Reason:      body.Reason,
			Status:      models.LeaveStatusPending,
			AppliedDate: time.Now(),
		}

		if err := database.DB.Create(&req).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin talebi oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(leaveToResponse(&req, user.Username))
	}
}

// GET /api/leaves/my-requests
func MyRequestsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var leaves []models.LeaveRequest
		if err := database.DB.
			Where("employee_id = ?", user.ID).
			Order("applied_date desc").
			Find(&leaves).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin talepleri listelenemedi")
		}

		result := make([]LeaveResponse, 0, len(leaves))
		for i := range leaves {
			result = append(result, leaveToResponse(&leaves[i], user.Username))
		}
		return c.JSON(result)
	}
}

// GET /api/leaves/pending  (manager/admin)
func PendingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var leaves []models.LeaveRequest
		if err := database.DB.
			Where("status = ?", models.LeaveStatusPending).
			Order("applied_date asc").
			Find(&leaves).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin talepleri listelenemedi")
		}

		names := usernameMap()
		result := make([]LeaveResponse, 0, len(leaves))
		for i := range leaves {
			name := names[leaves[i].EmployeeID]
			if name == "" {
				name = "Unknown"
			}
			result = append(result, leaveToResponse(&leaves[i], name))
		}
		return c.JSON(result)
	}
}

// reviewLeave: pending -> approved/rejected geçişi.
// Koşullu UPDATE (compare-and-swap) ile yapılır; iki yöneticinin aynı talebi
// aynı anda onaylaması durumunda sadece biri kazanır.
func reviewLeave(c *fiber.Ctx, newStatus models.LeaveStatus) error {
	reviewer, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	leaveID, err := c.ParamsInt("id")
	if err != nil || leaveID <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz izin id")
	}

	var body LeaveActionRequest
	if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
	}

	var req models.LeaveRequest
	if err := database.DB.First(&req, leaveID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "İzin talebi bulunamadı")
	}

	now := time.Now()
	res := database.DB.Model(&models.LeaveRequest{}).
		Where("id = ? AND status = ?", leaveID, models.LeaveStatusPending).
		Updates(map[string]interface{}{
			"status":        newStatus,
			"reviewed_by":   reviewer.ID,
			"reviewed_date": now,
			"comments":      body.Comments,
		})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "İzin talebi güncellenemedi")
	}
	if res.RowsAffected == 0 {
		// CAS kaybedildi: talep bu arada işlenmiş
		return fiber.NewError(fiber.StatusConflict, "İzin talebi zaten işleme alınmış")
	}

	// Onayda bakiye düşülür, sıfırın altına inmez
	if newStatus == models.LeaveStatusApproved {
		var employee models.User
		if err := database.DB.First(&employee, req.EmployeeID).Error; err == nil {
			newBalance := employee.LeaveBalances.Get(req.LeaveType) - req.DaysCount
			if newBalance < 0 {
				newBalance = 0
			}
			database.DB.Model(&models.User{}).
				Where("id = ?", employee.ID).
				Update("balance_"+string(req.LeaveType), newBalance)
		}
	}

	msg := "İzin talebi onaylandı"
	if newStatus == models.LeaveStatusRejected {
		msg = "İzin talebi reddedildi"
	}
	return c.JSON(fiber.Map{"success": true, "message": msg})
}

// PUT /api/leaves/:id/approve  (manager/admin)
func ApproveHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return reviewLeave(c, models.LeaveStatusApproved)
	}
}

// PUT /api/leaves/:id/reject  (manager/admin)
func RejectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return reviewLeave(c, models.LeaveStatusRejected)
	}
}

// GET /api/leaves/balance
func BalanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}
		return c.JSON(user.LeaveBalances.Map())
	}
}

type CalendarEntry struct {
	ID           uint             `json:"id"`
	EmployeeID   uint             `json:"employee_id"`
	EmployeeName string           `json:"employee_name"`
	LeaveType    models.LeaveType `json:"leave_type"`
	StartDate    string           `json:"start_date"`
	EndDate      string           `json:"end_date"`
	DaysCount    float64          `json:"days_count"`
}

// GET /api/leaves/calendar - sadece onaylı izinler
func CalendarHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var leaves []models.LeaveRequest
		if err := database.DB.
			Where("status = ?", models.LeaveStatusApproved).
			Order("start_date asc").
			Find(&leaves).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin takvimi alınamadı")
		}

		names := usernameMap()
		calendar := make([]CalendarEntry, 0, len(leaves))
		for _, l := range leaves {
			name := names[l.EmployeeID]
			if name == "" {
				name = "Unknown"
			}
			calendar = append(calendar, CalendarEntry{
				ID:           l.ID,
				EmployeeID:   l.EmployeeID,
				EmployeeName: name,
				LeaveType:    l.LeaveType,
				StartDate:    l.StartDate,
				EndDate:      l.EndDate,
				DaysCount:    l.DaysCount,
			})
		}

		return c.JSON(fiber.Map{"success": true, "calendar": calendar})
	}
}
