package attendance

import (
	"math"
	"time"

	"hris-backend/internal/auth"
	"hris-backend/internal/database"
	"hris-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// Mesai başlangıcı 09:00; 09:15'ten sonraki giriş geç sayılır
const (
	lateCutoffHour   = 9
	lateCutoffMinute = 15
)

// Yarım günden az sayılan çalışma süresi (saat)
const halfDayThresholdHours = 4.0

type CheckInRequest struct {
	Notes *string `json:"notes"`
}

type CheckOutRequest struct {
	Notes *string `json:"notes"`
}

type AttendanceResponse struct {
	ID           uint                    `json:"id"`
	EmployeeID   uint                    `json:"employee_id"`
	EmployeeName string                  `json:"employee_name"`
	Date         string                  `json:"date"`
	CheckIn      time.Time               `json:"check_in"`
	CheckOut     *time.Time              `json:"check_out"`
	WorkHours    *float64                `json:"work_hours"`
	Status       models.AttendanceStatus `json:"status"`
	Notes        *string                 `json:"notes"`
}

func recordToResponse(r *models.AttendanceRecord, employeeName string) AttendanceResponse {
	return AttendanceResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: employeeName,
		Date:         r.Date,
		CheckIn:      r.CheckIn,
		CheckOut:     r.CheckOut,
		WorkHours:    r.WorkHours,
		Status:       r.Status,
		Notes:        r.Notes,
	}
}

// CheckInStatus: yerel saate göre giriş durumu
func CheckInStatus(t time.Time) models.AttendanceStatus {
	if t.Hour() > lateCutoffHour ||
		(t.Hour() == lateCutoffHour && t.Minute() > lateCutoffMinute) {
		return models.AttendanceLate
	}
	return models.AttendancePresent
}

// RoundHours: saat değerini 2 ondalığa yuvarlar
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// POST /api/attendance/check-in
func CheckInHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CheckInRequest
		if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		now := time.Now()
		today := now.Format(dateLayout)

		// Günde en fazla bir kayıt
		var count int64
		database.DB.Model(&models.AttendanceRecord{}).
			Where("employee_id = ? AND date = ?", user.ID, today).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bugün zaten giriş yapılmış")
		}

		record := models.AttendanceRecord{
			EmployeeID: user.ID,
			Date:       today,
			CheckIn:    now,
			Status:     CheckInStatus(now),
			Notes:      body.Notes,
		}

		if err := database.DB.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Bugün zaten giriş yapılmış")
		}

		return c.Status(fiber.StatusCreated).JSON(recordToResponse(&record, user.Username))
	}
}

// POST /api/attendance/check-out
func CheckOutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CheckOutRequest
		if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		today := time.Now().Format(dateLayout)

		var record models.AttendanceRecord
		if err := database.DB.
			Where("employee_id = ? AND date = ?", user.ID, today).
			First(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bugün için giriş kaydı bulunamadı")
		}

		if record.CheckOut != nil {
			return fiber.NewError(fiber.StatusConflict, "Bugün zaten çıkış yapılmış")
		}

		checkOut := time.Now()
		workHours := RoundHours(checkOut.Sub(record.CheckIn).Hours())

		// 4 saatten az çalışma yarım gün sayılır, aksi halde giriş durumu korunur
		status := record.Status
		if workHours < halfDayThresholdHours {
			status = models.AttendanceHalfDay
		}

		notes := record.Notes
		if body.Notes != nil {
			notes = body.Notes
		}

		record.CheckOut = &checkOut
		record.WorkHours = &workHours
		record.Status = status
		record.Notes = notes

		if err := database.DB.Model(&models.AttendanceRecord{}).
			Where("id = ?", record.ID).
			Updates(map[string]interface{}{
				"check_out":  checkOut,
				"work_hours": workHours,
				"status":     status,
				"notes":      notes,
			}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çıkış kaydedilemedi")
		}

		return c.JSON(recordToResponse(&record, user.Username))
	}
}

// GET /api/attendance/today
func TodayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		today := time.Now().Format(dateLayout)

		var record models.AttendanceRecord
		if err := database.DB.
			Where("employee_id = ? AND date = ?", user.ID, today).
			First(&record).Error; err != nil {
			return c.JSON(fiber.Map{"checked_in": false, "date": today})
		}

		return c.JSON(fiber.Map{
			"checked_in":  true,
			"checked_out": record.CheckOut != nil,
			"date":        record.Date,
			"check_in":    record.CheckIn,
			"check_out":   record.CheckOut,
			"work_hours":  record.WorkHours,
			"status":      record.Status,
		})
	}
}

// GET /api/attendance/my-records?limit=30
func MyRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		limit := c.QueryInt("limit", 30)
		if limit <= 0 {
			limit = 30
		}
		if limit > 365 {
			limit = 365
		}

		var records []models.AttendanceRecord
		if err := database.DB.
			Where("employee_id = ?", user.ID).
			Order("date desc").
			Limit(limit).
			Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mesai kayıtları listelenemedi")
		}

		result := make([]AttendanceResponse, 0, len(records))
		for i := range records {
			result = append(result, recordToResponse(&records[i], user.Username))
		}
		return c.JSON(result)
	}
}
