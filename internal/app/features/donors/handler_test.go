package donors_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spondon-bd/spondon/internal/app/features/donors"
	"github.com/spondon-bd/spondon/internal/domain/models"
	"github.com/spondon-bd/spondon/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*donors.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return donors.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func emailRequest(method, email string) *http.Request {
	return testutil.WithChiURLParam(httptest.NewRequest(method, "/active-donors/"+email, nil), "email", email)
}

func TestHandleActivate(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	body := map[string]any{"email": "donor@example.com", "bloodGroup": "A+", "isActive": true}

	rec := httptest.NewRecorder()
	handler.HandleActivate(rec, testutil.NewJSONRequest(t, "POST", "/active-donors", body))
	testutil.AssertStatus(t, rec, http.StatusOK)
	resp := testutil.BodyMap(t, rec)
	if resp["message"] != "Donor activated" {
		t.Errorf("message: got %v", resp["message"])
	}
	if result, _ := resp["result"].(map[string]any); result["acknowledged"] != true {
		t.Errorf("result: got %v", resp["result"])
	}

	rec = httptest.NewRecorder()
	handler.HandleActivate(rec, testutil.NewJSONRequest(t, "POST", "/active-donors", body))
	testutil.AssertStatus(t, rec, http.StatusOK)
	if got := testutil.BodyMap(t, rec)["message"]; got != "Donor already active" {
		t.Errorf("message: got %v", got)
	}

	if n := fixtures.Count(ctx, models.CollActiveDonors, nil); n != 1 {
		t.Errorf("expected 1 donor, got %d", n)
	}
	if n := fixtures.Count(ctx, models.CollActiveDonors, bson.M{"isActive": bson.M{"$exists": true}}); n != 0 {
		t.Error("isActive must not be stored")
	}
}

func TestHandleActivate_MissingEmail(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.HandleActivate(rec, testutil.NewJSONRequest(t, "POST", "/active-donors", map[string]any{"bloodGroup": "A+"}))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestServeStatus_TracksActivation(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	status := func() (int, map[string]any) {
		rec := httptest.NewRecorder()
		handler.ServeStatus(rec, emailRequest("GET", "d@example.com"))
		return rec.Code, testutil.BodyMap(t, rec)
	}

	code, body := status()
	if code != http.StatusNotFound || body["isActive"] != false {
		t.Errorf("before activation: code=%d body=%v", code, body)
	}

	fixtures.CreateActiveDonor(ctx, "d@example.com")
	code, body = status()
	if code != http.StatusOK || body["isActive"] != true {
		t.Errorf("after activation: code=%d body=%v", code, body)
	}
	if body["bloodGroup"] != "O+" {
		t.Errorf("donor fields missing: %v", body)
	}

	rec := httptest.NewRecorder()
	handler.HandleDeactivate(rec, emailRequest("DELETE", "d@example.com"))
	testutil.AssertStatus(t, rec, http.StatusOK)
	if got := testutil.BodyMap(t, rec)["message"]; got != "Donor deactivated" {
		t.Errorf("message: got %v", got)
	}

	code, body = status()
	if code != http.StatusNotFound || body["isActive"] != false {
		t.Errorf("after deactivation: code=%d body=%v", code, body)
	}
}

func TestHandleDeactivate_AbsentSafe(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateActiveDonor(ctx, "stays@example.com")

	rec := httptest.NewRecorder()
	handler.HandleDeactivate(rec, emailRequest("DELETE", "never@example.com"))
	testutil.AssertStatus(t, rec, http.StatusNotFound)
	if got := testutil.BodyMap(t, rec)["message"]; got != "Donor not found" {
		t.Errorf("message: got %v", got)
	}
	if n := fixtures.Count(ctx, models.CollActiveDonors, nil); n != 1 {
		t.Errorf("donor count changed: %d", n)
	}
}

func TestServeList(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateActiveDonor(ctx, "a@example.com")
	fixtures.CreateActiveDonor(ctx, "b@example.com")

	rec := httptest.NewRecorder()
	handler.ServeList(rec, httptest.NewRequest("GET", "/active-donors", nil))
	testutil.AssertStatus(t, rec, http.StatusOK)
	if got := testutil.BodyList(t, rec); len(got) != 2 {
		t.Errorf("expected 2 donors, got %d", len(got))
	}
}
