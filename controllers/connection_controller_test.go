package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/campusbuzz/backend/database"
	"github.com/campusbuzz/backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupConnectionDB swaps the package-level DB for a fresh in-memory sqlite
// instance seeded with two users, and restores the old handle afterwards.
func setupConnectionDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	// Every pooled connection to :memory: would be its own database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Connection{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	users := []models.User{
		{Name: "Asha", Email: "asha@campus.edu", Password: "secret-one"},
		{Name: "Ben", Email: "ben@campus.edu", Password: "secret-two"},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	old := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = old
		sqlDB.Close()
	})
}

// callAs invokes a connection handler as viewerID acting on subjectID.
func callAs(handler gin.HandlerFunc, viewerID, subjectID uint) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(uint64(subjectID), 10)}}
	c.Set("userID", viewerID)
	handler(c)
	return w
}

func statusBetween(t *testing.T, ctrl *ConnectionController, viewerID, subjectID uint) string {
	t.Helper()
	w := callAs(ctrl.Status, viewerID, subjectID)
	if w.Code != http.StatusOK {
		t.Fatalf("status endpoint returned %d", w.Code)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode status response: %v", err)
	}
	return body.Status
}

func TestConnectThenCancel(t *testing.T) {
	setupConnectionDB(t)
	ctrl := NewConnectionController(nil)

	if w := callAs(ctrl.Connect, 1, 2); w.Code != http.StatusCreated {
		t.Fatalf("connect returned %d: %s", w.Code, w.Body.String())
	}
	if got := statusBetween(t, ctrl, 1, 2); got != models.StatusPending {
		t.Errorf("requester status = %q, want %q", got, models.StatusPending)
	}
	if got := statusBetween(t, ctrl, 2, 1); got != models.StatusRequestReceived {
		t.Errorf("addressee status = %q, want %q", got, models.StatusRequestReceived)
	}

	if w := callAs(ctrl.Cancel, 1, 2); w.Code != http.StatusOK {
		t.Fatalf("cancel returned %d: %s", w.Code, w.Body.String())
	}
	if got := statusBetween(t, ctrl, 1, 2); got != models.StatusNotConnected {
		t.Errorf("requester status after cancel = %q", got)
	}
	if got := statusBetween(t, ctrl, 2, 1); got != models.StatusNotConnected {
		t.Errorf("addressee status after cancel = %q", got)
	}

	var count int64
	database.DB.Model(&models.Connection{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no rows after cancel, found %d", count)
	}
}

func TestAcceptConsumesRequest(t *testing.T) {
	setupConnectionDB(t)
	ctrl := NewConnectionController(nil)

	callAs(ctrl.Connect, 1, 2)
	if w := callAs(ctrl.Accept, 2, 1); w.Code != http.StatusOK {
		t.Fatalf("accept returned %d: %s", w.Code, w.Body.String())
	}

	// Declining after accepting must fail and leave the pair connected
	if w := callAs(ctrl.Decline, 2, 1); w.Code != http.StatusNotFound {
		t.Errorf("decline after accept returned %d, want 404", w.Code)
	}
	if got := statusBetween(t, ctrl, 1, 2); got != models.StatusConnected {
		t.Errorf("requester status = %q, want %q", got, models.StatusConnected)
	}
	if got := statusBetween(t, ctrl, 2, 1); got != models.StatusConnected {
		t.Errorf("addressee status = %q, want %q", got, models.StatusConnected)
	}
}

func TestDeclineConsumesRequest(t *testing.T) {
	setupConnectionDB(t)
	ctrl := NewConnectionController(nil)

	callAs(ctrl.Connect, 1, 2)
	if w := callAs(ctrl.Decline, 2, 1); w.Code != http.StatusOK {
		t.Fatalf("decline returned %d: %s", w.Code, w.Body.String())
	}

	// Accepting after declining must fail; the pair stays disconnected
	if w := callAs(ctrl.Accept, 2, 1); w.Code != http.StatusNotFound {
		t.Errorf("accept after decline returned %d, want 404", w.Code)
	}
	if got := statusBetween(t, ctrl, 1, 2); got != models.StatusNotConnected {
		t.Errorf("requester status = %q, want not_connected", got)
	}
	if got := statusBetween(t, ctrl, 2, 1); got != models.StatusNotConnected {
		t.Errorf("addressee status = %q, want not_connected", got)
	}
}

func TestConnectConflictsOnExistingPair(t *testing.T) {
	setupConnectionDB(t)
	ctrl := NewConnectionController(nil)

	callAs(ctrl.Connect, 1, 2)

	if w := callAs(ctrl.Connect, 1, 2); w.Code != http.StatusConflict {
		t.Errorf("duplicate connect returned %d, want 409", w.Code)
	}
	// The addressee cannot open a second request for the same pair
	if w := callAs(ctrl.Connect, 2, 1); w.Code != http.StatusConflict {
		t.Errorf("reverse connect returned %d, want 409", w.Code)
	}

	callAs(ctrl.Accept, 2, 1)
	if w := callAs(ctrl.Connect, 1, 2); w.Code != http.StatusConflict {
		t.Errorf("connect while connected returned %d, want 409", w.Code)
	}
}

func TestCancelOnlyWorksForRequester(t *testing.T) {
	setupConnectionDB(t)
	ctrl := NewConnectionController(nil)

	callAs(ctrl.Connect, 1, 2)

	// The addressee's path out is decline, not cancel
	if w := callAs(ctrl.Cancel, 2, 1); w.Code != http.StatusNotFound {
		t.Errorf("cancel by addressee returned %d, want 404", w.Code)
	}
	if got := statusBetween(t, ctrl, 2, 1); got != models.StatusRequestReceived {
		t.Errorf("status after failed cancel = %q", got)
	}
}

func TestDisconnectRemovesAcceptedPair(t *testing.T) {
	setupConnectionDB(t)
	ctrl := NewConnectionController(nil)

	callAs(ctrl.Connect, 1, 2)
	callAs(ctrl.Accept, 2, 1)

	// Either side may disconnect
	if w := callAs(ctrl.Disconnect, 1, 2); w.Code != http.StatusOK {
		t.Fatalf("disconnect returned %d: %s", w.Code, w.Body.String())
	}
	if got := statusBetween(t, ctrl, 1, 2); got != models.StatusNotConnected {
		t.Errorf("status after disconnect = %q", got)
	}

	// A second disconnect has nothing to remove
	if w := callAs(ctrl.Disconnect, 2, 1); w.Code != http.StatusNotFound {
		t.Errorf("repeated disconnect returned %d, want 404", w.Code)
	}
}

func TestConnectToSelfRejected(t *testing.T) {
	setupConnectionDB(t)
	ctrl := NewConnectionController(nil)

	if w := callAs(ctrl.Connect, 1, 1); w.Code != http.StatusBadRequest {
		t.Errorf("self connect returned %d, want 400", w.Code)
	}
}
