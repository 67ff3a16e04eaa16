// internal/app/features/pocket/handler_test.go
package pocket_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/conghub/internal/app/features/pocket"
	"github.com/dalemusser/conghub/internal/app/system/otpcrypt"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/domain/models"
	"github.com/dalemusser/conghub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*pocket.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	out := outcome.New(nil, zap.NewNop(), outcome.ModeOff)
	otp, err := otpcrypt.New(bytes.Repeat([]byte{0x42}, 32))
	if err != nil {
		t.Fatalf("otpcrypt.New failed: %v", err)
	}
	return pocket.NewHandler(db, out, otp, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleCreate_ProvisionsPocketUser(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})

	body := map[string]string{"username": "Pocket Kid", "pocket_local_id": "local-1"}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/", "ana@example.com", body)
	req = testutil.WithChiURLParam(req, "id", cong.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	if got := testutil.MessageCode(t, rec); got != "POCKET_CREATED" {
		t.Errorf("code: got %q, want %q", got, "POCKET_CREATED")
	}
}

func TestHandleCreate_RequiresUsernameAndLocalID(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", "ana@example.com", map[string]string{"username": "Pocket Kid"})
	req = testutil.WithChiURLParam(req, "id", cong.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServePocket_DecryptsStoredCode(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})

	sealed, err := h.OTP.Encrypt("ABC123-DEF456")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	kid := f.CreatePocketUser(ctx, "Pocket Kid", cong.ID.Hex(), sealed, nil)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/", "ana@example.com", nil)
	req = testutil.WithChiURLParams(req, map[string]string{"id": cong.ID.Hex(), "user": kid.ID.Hex()})
	rec := httptest.NewRecorder()
	h.ServePocket(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Username    string `json:"username"`
		PocketOCode string `json:"pocket_oCode"`
	}
	testutil.DecodeJSONBody(t, rec, &resp)
	if resp.PocketOCode != "ABC123-DEF456" {
		t.Errorf("pocket_oCode: got %q, want the decrypted code", resp.PocketOCode)
	}
	if resp.Username != "Pocket Kid" {
		t.Errorf("username: got %q", resp.Username)
	}
}

func TestServePocket_UnknownUserNotFound(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})

	req := testutil.NewJSONRequest(t, http.MethodGet, "/", "ana@example.com", nil)
	req = testutil.WithChiURLParams(req, map[string]string{"id": cong.ID.Hex(), "user": primitive.NewObjectID().Hex()})
	rec := httptest.NewRecorder()
	h.ServePocket(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
	if got := testutil.MessageCode(t, rec); got != "POCKET_NOT_FOUND" {
		t.Errorf("code: got %q, want %q", got, "POCKET_NOT_FOUND")
	}
}

func TestHandleGenerateCode_ReturnsPlaintextStoresSealed(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})
	kid := f.CreatePocketUser(ctx, "Pocket Kid", cong.ID.Hex(), "", nil)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/code", "ana@example.com", nil)
	req = testutil.WithChiURLParams(req, map[string]string{"id": cong.ID.Hex(), "user": kid.ID.Hex()})
	rec := httptest.NewRecorder()
	h.HandleGenerateCode(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Code string `json:"code"`
	}
	testutil.DecodeJSONBody(t, rec, &resp)
	if len(resp.Code) != 13 || resp.Code[6] != '-' {
		t.Fatalf("code shape: got %q", resp.Code)
	}

	stored, err := h.Users.GetByID(ctx, kid.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.PocketOCode == "" || stored.PocketOCode == resp.Code {
		t.Errorf("stored code must be sealed, got %q", stored.PocketOCode)
	}
	plain, err := h.OTP.Decrypt(stored.PocketOCode)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if plain != resp.Code {
		t.Errorf("stored code decrypts to %q, want %q", plain, resp.Code)
	}
}

func TestHandleDeleteCode_CascadesWithoutDevices(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})
	kid := f.CreatePocketUser(ctx, "Pocket Kid", cong.ID.Hex(), "sealed", nil)

	req := testutil.NewJSONRequest(t, http.MethodDelete, "/code", "ana@example.com", nil)
	req = testutil.WithChiURLParams(req, map[string]string{"id": cong.ID.Hex(), "user": kid.ID.Hex()})
	rec := httptest.NewRecorder()
	h.HandleDeleteCode(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	if got := testutil.MessageCode(t, rec); got != "POCKET_USER_DELETED" {
		t.Errorf("code: got %q, want %q", got, "POCKET_USER_DELETED")
	}
	if _, err := h.Users.GetByID(ctx, kid.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected the pocket user to be deleted, got %v", err)
	}
}

func TestHandleDeleteCode_KeepsUserWithDevices(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})
	devices := []models.PocketDevice{{VisitorID: "v1", Name: "tablet"}}
	kid := f.CreatePocketUser(ctx, "Pocket Kid", cong.ID.Hex(), "sealed", devices)

	req := testutil.NewJSONRequest(t, http.MethodDelete, "/code", "ana@example.com", nil)
	req = testutil.WithChiURLParams(req, map[string]string{"id": cong.ID.Hex(), "user": kid.ID.Hex()})
	rec := httptest.NewRecorder()
	h.HandleDeleteCode(rec, req)

	if got := testutil.MessageCode(t, rec); got != "POCKET_CODE_REMOVED" {
		t.Errorf("code: got %q, want %q", got, "POCKET_CODE_REMOVED")
	}
	kept, err := h.Users.GetByID(ctx, kid.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if kept.PocketOCode != "" {
		t.Errorf("pocket code must be cleared, got %q", kept.PocketOCode)
	}
}

func TestHandleDeleteCode_FullAccountKeepsRecord(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	ana := f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})
	_, err := f.DB().Collection("users").UpdateByID(ctx, ana.ID,
		bson.M{"$set": bson.M{"pocket_ocode": "sealed"}})
	if err != nil {
		t.Fatalf("seeding code failed: %v", err)
	}

	req := testutil.NewJSONRequest(t, http.MethodDelete, "/code", "ana@example.com", nil)
	req = testutil.WithChiURLParams(req, map[string]string{"id": cong.ID.Hex(), "user": ana.ID.Hex()})
	rec := httptest.NewRecorder()
	h.HandleDeleteCode(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	// a deviceless full account never cascades: code removed, record kept
	if got := testutil.MessageCode(t, rec); got != "POCKET_CODE_REMOVED" {
		t.Errorf("code: got %q, want %q", got, "POCKET_CODE_REMOVED")
	}

	kept, err := h.Users.GetByID(ctx, ana.ID)
	if err != nil {
		t.Fatalf("expected the full account to survive, got %v", err)
	}
	if kept.PocketOCode != "" {
		t.Errorf("pocket code must be cleared, got %q", kept.PocketOCode)
	}
}

func TestHandleDeleteDevice_ValidatesPayloadFirst(t *testing.T) {
	h, _ := newHandler(t)

	// no identifiers at all: the payload check still answers first
	req := testutil.NewJSONRequest(t, http.MethodDelete, "/devices", "ana@example.com", map[string]string{})
	rec := httptest.NewRecorder()
	h.HandleDeleteDevice(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestHandleDeleteDevice_RemovesOneDevice(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})
	devices := []models.PocketDevice{{VisitorID: "v1"}, {VisitorID: "v2"}}
	kid := f.CreatePocketUser(ctx, "Pocket Kid", cong.ID.Hex(), "sealed", devices)

	req := testutil.NewJSONRequest(t, http.MethodDelete, "/devices", "ana@example.com", map[string]string{"pocket_visitorid": "v1"})
	req = testutil.WithChiURLParams(req, map[string]string{"id": cong.ID.Hex(), "user": kid.ID.Hex()})
	rec := httptest.NewRecorder()
	h.HandleDeleteDevice(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Devices []models.PocketDevice `json:"devices"`
	}
	testutil.DecodeJSONBody(t, rec, &resp)
	if len(resp.Devices) != 1 || resp.Devices[0].VisitorID != "v2" {
		t.Errorf("devices: got %v, want [v2]", resp.Devices)
	}
}

func TestHandleDeleteDevice_LastDeviceCascades(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})
	kid := f.CreatePocketUser(ctx, "Pocket Kid", cong.ID.Hex(), "", []models.PocketDevice{{VisitorID: "v1"}})

	req := testutil.NewJSONRequest(t, http.MethodDelete, "/devices", "ana@example.com", map[string]string{"pocket_visitorid": "v1"})
	req = testutil.WithChiURLParams(req, map[string]string{"id": cong.ID.Hex(), "user": kid.ID.Hex()})
	rec := httptest.NewRecorder()
	h.HandleDeleteDevice(rec, req)

	if got := testutil.MessageCode(t, rec); got != "POCKET_USER_DELETED" {
		t.Errorf("code: got %q, want %q", got, "POCKET_USER_DELETED")
	}
	if _, err := h.Users.GetByID(ctx, kid.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected the pocket user to be deleted, got %v", err)
	}
}

func TestHandleUpdateUsername_Echoes(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})
	kid := f.CreatePocketUser(ctx, "Pocket Kid", cong.ID.Hex(), "", nil)

	req := testutil.NewJSONRequest(t, http.MethodPatch, "/username", "ana@example.com", map[string]string{"username": "Renamed Kid"})
	req = testutil.WithChiURLParams(req, map[string]string{"id": cong.ID.Hex(), "user": kid.ID.Hex()})
	rec := httptest.NewRecorder()
	h.HandleUpdateUsername(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Username string `json:"username"`
	}
	testutil.DecodeJSONBody(t, rec, &resp)
	if resp.Username != "Renamed Kid" {
		t.Errorf("username: got %q", resp.Username)
	}

	renamed, err := h.Users.GetByID(ctx, kid.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if renamed.Username != "Renamed Kid" {
		t.Errorf("stored username: got %q", renamed.Username)
	}
}
