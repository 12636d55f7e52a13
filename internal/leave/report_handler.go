package leave

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
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	DaysCount    float64 `json:"days_count"`
	Status       string  `json:"status"`
	AppliedDate  string  `json:"applied_date"`
	ReviewedBy   string  `json:"reviewed_by"`
	ReviewedDate string  `json:"reviewed_date"`
	Reason       string  `json:"reason"`
	Comments     string  `json:"comments"`
}

func buildReport() ([]ReportRow, error) {
	var leaves []models.LeaveRequest
	if err := database.DB.Order("applied_date desc").Find(&leaves).Error; err != nil {
		return nil, err
	}

	names := usernameMap()
	rows := make([]ReportRow, 0, len(leaves))
	for _, l := range leaves {
		employeeName := names[l.EmployeeID]
		if employeeName == "" {
			employeeName = "Unknown"
		}

		reviewerName := "N/A"
		if l.ReviewedBy != nil {
			if n, ok := names[*l.ReviewedBy]; ok {
				reviewerName = n
			}
		}

		reviewedDate := "N/A"
		if l.ReviewedDate != nil {
			reviewedDate = l.ReviewedDate.Format(time.RFC3339)
		}

		comments := "N/A"
		if l.Comments != nil && *l.Comments != "" {
			comments = *l.Comments
		}

		rows = append(rows, ReportRow{
			EmployeeName: employeeName,
			LeaveType:    strings.ToUpper(string(l.LeaveType)),
			StartDate:    l.StartDate,
			EndDate:      l.EndDate,
			DaysCount:    l.DaysCount,
			Status:       strings.ToUpper(string(l.Status)),
			AppliedDate:  l.AppliedDate.Format(time.RFC3339),
			ReviewedBy:   reviewerName,
			ReviewedDate: reviewedDate,
			Reason:       l.Reason,
			Comments:     comments,
		})
	}
	return rows, nil
}

// GET /api/leaves/report  (sadece admin)
func ReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := buildReport()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin raporu oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"success":        true,
			"report":         rows,
			"total_requests": len(rows),
		})
	}
}

// GET /api/leaves/report/export  (sadece admin) - Excel çıktısı
func ReportExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := buildReport()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin raporu oluşturulamadı")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		headers := []string{"Çalışan", "İzin Türü", "Başlangıç", "Bitiş", "Gün", "Durum", "Başvuru Tarihi", "İnceleyen", "İnceleme Tarihi", "Gerekçe", "Yorum"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for r, row := range rows {
			values := []interface{}{
				row.EmployeeName, row.LeaveType, row.StartDate, row.EndDate,
				row.DaysCount, row.Status, row.AppliedDate, row.ReviewedBy,
				row.ReviewedDate, row.Reason, row.Comments,
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

		filename := fmt.Sprintf("izin-raporu-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(buf.Bytes())
	}
}
