package attendance

import (
	"fmt"
	"strings"
	"time"

	"hris-backend/internal/database"
	"hris-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type ReportRow struct {
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	CheckIn      string  `json:"check_in"`
	CheckOut     string  `json:"check_out"`
	WorkHours    float64 `json:"work_hours"`
	Status       string  `json:"status"`
	Notes        string  `json:"notes"`
}

func buildReport(startDate, endDate string) ([]ReportRow, error) {
	q := database.DB.Order("date desc")
	// Tarih aralığı opsiyonel, iki uç da dahil
	if startDate != "" && endDate != "" {
		q = q.Where("date >= ? AND date <= ?", startDate, endDate)
	}

	var records []models.AttendanceRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}

	var users []models.User
	database.DB.Select("id", "username").Find(&users)
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}

	rows := make([]ReportRow, 0, len(records))
	for _, r := range records {
		name := names[r.EmployeeID]
		if name == "" {
			name = "Unknown"
		}

		checkOut := "N/A"
		if r.CheckOut != nil {
			checkOut = r.CheckOut.Format(time.RFC3339)
		}

		workHours := 0.0
		if r.WorkHours != nil {
			workHours = *r.WorkHours
		}

		notes := "N/A"
		if r.Notes != nil && *r.Notes != "" {
			notes = *r.Notes
		}

		rows = append(rows, ReportRow{
			EmployeeName: name,
			Date:         r.Date,
			CheckIn:      r.CheckIn.Format(time.RFC3339),
			CheckOut:     checkOut,
			WorkHours:    workHours,
			Status:       strings.ToUpper(string(r.Status)),
			Notes:        notes,
		})
	}
	return rows, nil
}

// GET /api/attendance/report?start_date=&end_date=  (manager/admin)
func ReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := buildReport(c.Query("start_date"), c.Query("end_date"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mesai raporu oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"success":       true,
			"report":        rows,
			"total_records": len(rows),
		})
	}
}

// GET /api/attendance/report/export  (manager/admin) - Excel çıktısı
func ReportExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := buildReport(c.Query("start_date"), c.Query("end_date"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mesai raporu oluşturulamadı")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		headers := []string{"Çalışan", "Tarih", "Giriş", "Çıkış", "Çalışma Saati", "Durum", "Not"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for r, row := range rows {
			values := []interface{}{
				row.EmployeeName, row.Date, row.CheckIn, row.CheckOut,
				row.WorkHours, row.Status, row.Notes,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		filename := fmt.Sprintf("mesai-raporu-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(buf.Bytes())
	}
}
