package leave

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"hris-backend/internal/auth"
	"hris-backend/internal/config"
	"hris-backend/internal/database"
	"hris-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testCfg = &config.Config{
	JWTSecret:      "test-secret-key-at-least-32-chars-long",
	JWTExpiryHours: 1,
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:leave_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	app := fiber.New()
	api := app.Group("/api", auth.JWTMiddleware(testCfg))
	api.Post("/leaves/apply", ApplyHandler())
	api.Get("/leaves/my-requests", MyRequestsHandler())
	api.Get("/leaves/balance", BalanceHandler())
	api.Get("/leaves/calendar", CalendarHandler())
	api.Get("/leaves/pending", auth.RequireRole(models.RoleManager, models.RoleAdmin), PendingHandler())
	api.Put("/leaves/:id/approve", auth.RequireRole(models.RoleManager, models.RoleAdmin), ApproveHandler())
	api.Put("/leaves/:id/reject", auth.RequireRole(models.RoleManager, models.RoleAdmin), RejectHandler())
	api.Get("/leaves/report", auth.RequireRole(models.RoleAdmin), ReportHandler())
	api.Get("/leaves/report/export", auth.RequireRole(models.RoleAdmin), ReportExportHandler())
	return app
}

func createUser(t *testing.T, username string, role models.UserRole) (*models.User, string) {
	t.Helper()

	user := models.User{
		Username:      username,
		Email:         username + "@example.com",
		PasswordHash:  "hash",
		Role:          role,
		LeaveBalances: models.DefaultLeaveBalances(),
		Skills:        "null",
		Documents:     "null",
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := auth.GenerateToken(testCfg.JWTSecret, testCfg.JWTExpiryHours, &user)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return &user, token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	return resp, raw
}

func TestCalculateDays(t *testing.T) {
	cases := []struct {
		start, end string
		want       float64
		wantErr    bool
	}{
		{"2025-03-10", "2025-03-10", 1, false}, // tek gün
		{"2025-03-10", "2025-03-12", 3, false},
		{"2025-02-27", "2025-03-02", 4, false}, // ay geçişi
		{"2025-03-12", "2025-03-10", 0, true},  // ters aralık
		{"2025-3-10", "2025-03-12", 0, true},   // bozuk format
		{"", "2025-03-12", 0, true},
	}

	for _, tc := range cases {
		got, err := CalculateDays(tc.start, tc.end)
		if tc.wantErr {
			if err == nil {
				t.Errorf("CalculateDays(%q, %q) hata bekleniyordu", tc.start, tc.end)
			}
			continue
		}
		if err != nil {
			t.Errorf("CalculateDays(%q, %q): %v", tc.start, tc.end, err)
			continue
		}
		if got != tc.want {
			t.Errorf("CalculateDays(%q, %q) = %v, beklenen %v", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestApplyLeave(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "emp1", models.RoleEmployee)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/leaves/apply", token, map[string]string{
		"leave_type": "cl",
		"start_date": "2025-06-02",
		"end_date":   "2025-06-04",
		"reason":     "aile ziyareti",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("apply status = %d, body = %s", resp.StatusCode, raw)
	}

	var lr LeaveResponse
	if err := json.Unmarshal(raw, &lr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if lr.DaysCount != 3 {
		t.Errorf("days_count = %v, beklenen 3", lr.DaysCount)
	}
	if lr.Status != models.LeaveStatusPending {
		t.Errorf("status = %q, beklenen pending", lr.Status)
	}
	if lr.EmployeeName != "emp1" {
		t.Errorf("employee_name = %q", lr.EmployeeName)
	}
}

func TestApplyLeaveInvalidType(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "emp1", models.RoleEmployee)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/leaves/apply", token, map[string]string{
		"leave_type": "vacation",
		"start_date": "2025-06-02",
		"end_date":   "2025-06-04",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid type status = %d, beklenen 400", resp.StatusCode)
	}
}

func TestApplyLeaveInsufficientBalance(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "emp1", models.RoleEmployee)

	// cl bakiyesi 12 gün; 20 günlük talep reddedilmeli
	resp, _ := doJSON(t, app, http.MethodPost, "/api/leaves/apply", token, map[string]string{
		"leave_type": "cl",
		"start_date": "2025-06-01",
		"end_date":   "2025-06-20",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("insufficient balance status = %d, beklenen 400", resp.StatusCode)
	}
}

func applyLeave(t *testing.T, app *fiber.App, token, leaveType, start, end string) uint {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/api/leaves/apply", token, map[string]string{
		"leave_type": leaveType,
		"start_date": start,
		"end_date":   end,
		"reason":     "test",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("apply status = %d, body = %s", resp.StatusCode, raw)
	}
	var lr LeaveResponse
	_ = json.Unmarshal(raw, &lr)
	return lr.ID
}

func TestApproveDeductsBalance(t *testing.T) {
	app := setupApp(t)
	emp, empToken := createUser(t, "emp1", models.RoleEmployee)
	_, mgrToken := createUser(t, "mgr1", models.RoleManager)

	leaveID := applyLeave(t, app, empToken, "cl", "2025-06-02", "2025-06-04") // 3 gün

	resp, raw := doJSON(t, app, http.MethodPut, "/api/leaves/"+itoa(leaveID)+"/approve", mgrToken, map[string]string{
		"comments": "iyi tatiller",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve status = %d, body = %s", resp.StatusCode, raw)
	}

	var updated models.User
	if err := database.DB.First(&updated, emp.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if updated.LeaveBalances.CL != 9 {
		t.Errorf("cl bakiyesi = %v, beklenen 9", updated.LeaveBalances.CL)
	}

	var req models.LeaveRequest
	database.DB.First(&req, leaveID)
	if req.Status != models.LeaveStatusApproved {
		t.Errorf("status = %q", req.Status)
	}
	if req.ReviewedBy == nil || req.ReviewedDate == nil {
		t.Error("reviewed_by / reviewed_date doldurulmamış")
	}
	if req.Comments == nil || *req.Comments != "iyi tatiller" {
		t.Errorf("comments = %v", req.Comments)
	}
}

func TestApproveFloorsAtZero(t *testing.T) {
	app := setupApp(t)
	emp, empToken := createUser(t, "emp1", models.RoleEmployee)
	_, mgrToken := createUser(t, "mgr1", models.RoleManager)

	leaveID := applyLeave(t, app, empToken, "sl", "2025-06-01", "2025-06-08") // 8 gün, sl bakiyesi 10

	// Onaydan önce bakiye düşürülürse (ör. admin müdahalesi) taban sıfırdır
	database.DB.Model(&models.User{}).Where("id = ?", emp.ID).Update("balance_sl", 2)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/leaves/"+itoa(leaveID)+"/approve", mgrToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve status = %d", resp.StatusCode)
	}

	var updated models.User
	database.DB.First(&updated, emp.ID)
	if updated.LeaveBalances.SL != 0 {
		t.Errorf("sl bakiyesi = %v, beklenen 0 (negatif olamaz)", updated.LeaveBalances.SL)
	}
}

func TestDoubleReviewConflict(t *testing.T) {
	app := setupApp(t)
	_, empToken := createUser(t, "emp1", models.RoleEmployee)
	_, mgrToken := createUser(t, "mgr1", models.RoleManager)

	leaveID := applyLeave(t, app, empToken, "cl", "2025-06-02", "2025-06-02")

	resp, _ := doJSON(t, app, http.MethodPut, "/api/leaves/"+itoa(leaveID)+"/approve", mgrToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ilk approve status = %d", resp.StatusCode)
	}

	// İkinci inceleme (approve veya reject) çakışma döner
	resp, _ = doJSON(t, app, http.MethodPut, "/api/leaves/"+itoa(leaveID)+"/approve", mgrToken, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("ikinci approve status = %d, beklenen 409", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, http.MethodPut, "/api/leaves/"+itoa(leaveID)+"/reject", mgrToken, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("approve sonrası reject status = %d, beklenen 409", resp.StatusCode)
	}
}

func TestRejectDoesNotDeduct(t *testing.T) {
	app := setupApp(t)
	emp, empToken := createUser(t, "emp1", models.RoleEmployee)
	_, mgrToken := createUser(t, "mgr1", models.RoleManager)

	leaveID := applyLeave(t, app, empToken, "el", "2025-06-02", "2025-06-04")

	resp, _ := doJSON(t, app, http.MethodPut, "/api/leaves/"+itoa(leaveID)+"/reject", mgrToken, map[string]string{
		"comments": "yoğun dönem",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reject status = %d", resp.StatusCode)
	}

	var updated models.User
	database.DB.First(&updated, emp.ID)
	if updated.LeaveBalances.EL != 15 {
		t.Errorf("el bakiyesi = %v, red sonrası değişmemeliydi", updated.LeaveBalances.EL)
	}
}

func TestReviewMissingLeave(t *testing.T) {
	app := setupApp(t)
	_, mgrToken := createUser(t, "mgr1", models.RoleManager)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/leaves/9999/approve", mgrToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing leave status = %d, beklenen 404", resp.StatusCode)
	}
}

func TestPendingRequiresManagerRole(t *testing.T) {
	app := setupApp(t)
	_, empToken := createUser(t, "emp1", models.RoleEmployee)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/leaves/pending", empToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("employee pending status = %d, beklenen 403", resp.StatusCode)
	}
}

func TestPendingListsWithNames(t *testing.T) {
	app := setupApp(t)
	_, empToken := createUser(t, "emp1", models.RoleEmployee)
	_, mgrToken := createUser(t, "mgr1", models.RoleManager)

	applyLeave(t, app, empToken, "cl", "2025-06-02", "2025-06-02")

	resp, raw := doJSON(t, app, http.MethodGet, "/api/leaves/pending", mgrToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pending status = %d", resp.StatusCode)
	}

	var list []LeaveResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("pending sayısı = %d, beklenen 1", len(list))
	}
	if list[0].EmployeeName != "emp1" {
		t.Errorf("employee_name = %q", list[0].EmployeeName)
	}
}

func TestCalendarOnlyApproved(t *testing.T) {
	app := setupApp(t)
	_, empToken := createUser(t, "emp1", models.RoleEmployee)
	_, mgrToken := createUser(t, "mgr1", models.RoleManager)

	approvedID := applyLeave(t, app, empToken, "cl", "2025-06-02", "2025-06-03")
	applyLeave(t, app, empToken, "el", "2025-07-01", "2025-07-02") // pending kalır

	doJSON(t, app, http.MethodPut, "/api/leaves/"+itoa(approvedID)+"/approve", mgrToken, nil)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/leaves/calendar", empToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("calendar status = %d", resp.StatusCode)
	}

	var body struct {
		Success  bool            `json:"success"`
		Calendar []CalendarEntry `json:"calendar"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Calendar) != 1 {
		t.Fatalf("takvimde %d kayıt var, beklenen 1", len(body.Calendar))
	}
	if body.Calendar[0].ID != approvedID {
		t.Errorf("takvimdeki id = %d, beklenen %d", body.Calendar[0].ID, approvedID)
	}
}

func TestMyRequestsOrder(t *testing.T) {
	app := setupApp(t)
	_, empToken := createUser(t, "emp1", models.RoleEmployee)
	_, otherToken := createUser(t, "emp2", models.RoleEmployee)

	applyLeave(t, app, empToken, "cl", "2025-06-02", "2025-06-02")
	applyLeave(t, app, otherToken, "cl", "2025-06-03", "2025-06-03")

	resp, raw := doJSON(t, app, http.MethodGet, "/api/leaves/my-requests", empToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("my-requests status = %d", resp.StatusCode)
	}

	var list []LeaveResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("liste %d kayıt, beklenen sadece kendi talebi (1)", len(list))
	}
}

func itoa(v uint) string {
	return strconv.Itoa(int(v))
}
