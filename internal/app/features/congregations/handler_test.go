// internal/app/features/congregations/handler_test.go
package congregations_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/conghub/internal/app/features/congregations"
	"github.com/dalemusser/conghub/internal/app/gateway/directory"
	"github.com/dalemusser/conghub/internal/app/system/mailer"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/domain/models"
	"github.com/dalemusser/conghub/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T, cfg congregations.Config) (*congregations.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	out := outcome.New(nil, zap.NewNop(), outcome.ModeOff)
	dir := directory.New("http://127.0.0.1:0", "http://127.0.0.1:0", "http://127.0.0.1:0", zap.NewNop())
	// nothing listens on this port; delivery failures are ignored by the
	// request flow
	mail := mailer.New(mailer.Config{Host: "127.0.0.1", Port: 2525, From: "noreply@example.com"}, zap.NewNop())
	return congregations.NewHandler(db, out, dir, mail, cfg, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleRequest_SecondOpenRequestRejected(t *testing.T) {
	h, f := newHandler(t, congregations.Config{ReviewerEmail: "reviewer@example.com"})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateUser(ctx, "ana", "ana@example.com", "", nil)
	f.CreateOpenRequest(ctx, "ana@example.com", "Central", 123)

	body := map[string]any{
		"email":         "ana@example.com",
		"cong_name":     "Central",
		"cong_number":   123,
		"app_requestor": "lmmo",
	}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/congregations/request", "ana@example.com", body)
	rec := httptest.NewRecorder()
	h.HandleRequest(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusMethodNotAllowed, rec.Body.String())
	}
	if got := testutil.MessageCode(t, rec); got != "REQUEST_EXIST" {
		t.Errorf("code: got %q, want %q", got, "REQUEST_EXIST")
	}
}

func TestHandleRequest_FilesRequest(t *testing.T) {
	h, f := newHandler(t, congregations.Config{ReviewerEmail: "reviewer@example.com"})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateUser(ctx, "ana", "ana@example.com", "", nil)

	body := map[string]any{
		"email":         "ana@example.com",
		"cong_name":     "Central",
		"cong_number":   123,
		"app_requestor": "lmmo",
	}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/congregations/request", "ana@example.com", body)
	rec := httptest.NewRecorder()
	h.HandleRequest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Message    string `json:"message"`
		CongName   string `json:"cong_name"`
		CongNumber int    `json:"cong_number"`
	}
	testutil.DecodeJSONBody(t, rec, &resp)
	if resp.Message != "OK" || resp.CongName != "Central" || resp.CongNumber != 123 {
		t.Errorf("unexpected response: %+v", resp)
	}

	if _, err := h.Requests.FindOpenByEmail(ctx, "ana@example.com"); err != nil {
		t.Errorf("expected an open request on record: %v", err)
	}
}

func TestHandleRequest_AutoApproveCreatesCongregation(t *testing.T) {
	h, f := newHandler(t, congregations.Config{AutoApproveRequests: true})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ana := f.CreateUser(ctx, "ana", "ana@example.com", "", nil)

	body := map[string]any{
		"email":         "ana@example.com",
		"cong_name":     "Central",
		"cong_number":   123,
		"app_requestor": "lmmo",
	}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/congregations/request", "ana@example.com", body)
	rec := httptest.NewRecorder()
	h.HandleRequest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	if got := testutil.MessageCode(t, rec); got != "OK" {
		t.Errorf("code: got %q, want %q", got, "OK")
	}

	member, err := h.Users.GetByID(ctx, ana.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if member.CongID == "" {
		t.Error("expected the requestor to be affiliated with the new congregation")
	}
	if len(member.CongRole) != 1 || member.CongRole[0] != models.RoleLMMO {
		t.Errorf("cong_role: got %v, want [lmmo]", member.CongRole)
	}
}

func TestHandleRequest_NonLMMORequestorRejected(t *testing.T) {
	h, _ := newHandler(t, congregations.Config{ReviewerEmail: "reviewer@example.com"})

	body := map[string]any{
		"email":         "ana@example.com",
		"cong_name":     "Central",
		"cong_number":   123,
		"app_requestor": "admin",
	}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/congregations/request", "ana@example.com", body)
	rec := httptest.NewRecorder()
	h.HandleRequest(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleCreate_ExistingNumberRejectedWithoutMutation(t *testing.T) {
	h, f := newHandler(t, congregations.Config{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateCongregation(ctx, "Central", "MG", 123)
	ana := f.CreateUser(ctx, "ana", "ana@example.com", "", nil)

	body := map[string]any{
		"email":         "ana@example.com",
		"country_code":  "MG",
		"cong_name":     "Central Again",
		"cong_number":   123,
		"app_requestor": "lmmo",
	}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/congregations", "ana@example.com", body)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusNotFound, rec.Body.String())
	}
	if got := testutil.MessageCode(t, rec); got != "CONG_EXISTS" {
		t.Errorf("code: got %q, want %q", got, "CONG_EXISTS")
	}

	member, err := h.Users.GetByID(ctx, ana.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if member.CongID != "" {
		t.Error("creator must not be affiliated when creation is rejected")
	}
}

func TestHandleCreate_AffiliatesCreatorAsAdminLMMO(t *testing.T) {
	h, f := newHandler(t, congregations.Config{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateUser(ctx, "ana", "ana@example.com", "", nil)

	body := map[string]any{
		"email":         "ana@example.com",
		"country_code":  "MG",
		"cong_name":     "Central",
		"cong_number":   123,
		"app_requestor": "lmmo",
	}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/congregations", "ana@example.com", body)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}

	var created models.User
	testutil.DecodeJSONBody(t, rec, &created)
	if created.CongID == "" {
		t.Fatal("expected the creator to carry the new congregation id")
	}
	want := []string{models.RoleAdmin, models.RoleLMMO}
	if len(created.CongRole) != len(want) || created.CongRole[0] != want[0] || created.CongRole[1] != want[1] {
		t.Errorf("cong_role: got %v, want %v", created.CongRole, want)
	}
}

func TestHandleUpdateInfo_PersistsNewIdentity(t *testing.T) {
	h, f := newHandler(t, congregations.Config{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})

	body := map[string]any{"country_code": "MG", "cong_name": "Central Renamed", "cong_number": 124}
	req := testutil.NewJSONRequest(t, http.MethodPatch, "/", "ana@example.com", body)
	req = testutil.WithChiURLParam(req, "id", cong.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdateInfo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}

	renamed, err := h.Congs.GetByID(ctx, cong.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if renamed.CongName != "Central Renamed" || renamed.CongNumber != 124 {
		t.Errorf("congregation not updated: %+v", renamed)
	}
}

func TestHandleUpdateInfo_NonMemberForbidden(t *testing.T) {
	h, f := newHandler(t, congregations.Config{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)

	body := map[string]any{"country_code": "MG", "cong_name": "Hijacked", "cong_number": 999}
	req := testutil.NewJSONRequest(t, http.MethodPatch, "/", "outsider@example.com", body)
	req = testutil.WithChiURLParam(req, "id", cong.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdateInfo(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusForbidden, rec.Body.String())
	}

	unchanged, err := h.Congs.GetByID(ctx, cong.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if unchanged.CongName != "Central" {
		t.Errorf("congregation must be untouched, got %q", unchanged.CongName)
	}
}

func TestServeLastBackup_NoBackupOnRecord(t *testing.T) {
	h, f := newHandler(t, congregations.Config{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})

	req := testutil.NewJSONRequest(t, http.MethodGet, "/", "ana@example.com", nil)
	req = testutil.WithChiURLParam(req, "id", cong.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeLastBackup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	if got := testutil.MessageCode(t, rec); got != "NO_BACKUP" {
		t.Errorf("code: got %q, want %q", got, "NO_BACKUP")
	}
}

func TestBackupRoutes_MissingIDCodes(t *testing.T) {
	h, _ := newHandler(t, congregations.Config{})

	// the last-backup route answers the plain congregation-id code, the
	// save/get routes the request-id code
	cases := []struct {
		name     string
		serve    http.HandlerFunc
		wantCode string
	}{
		{"last backup", h.ServeLastBackup, "CONG_ID_INVALID"},
		{"save backup", h.HandleSaveBackup, "REQUEST_ID_INVALID"},
		{"get backup", h.ServeBackup, "REQUEST_ID_INVALID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodGet, "/", "ana@example.com", nil)
			rec := httptest.NewRecorder()
			tc.serve(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if got := testutil.MessageCode(t, rec); got != tc.wantCode {
				t.Errorf("code: got %q, want %q", got, tc.wantCode)
			}
		})
	}
}

func TestHandleSaveBackup_RequiresAllSections(t *testing.T) {
	h, f := newHandler(t, congregations.Config{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})

	// cong_settings is missing
	body := map[string]any{
		"cong_persons":        []any{},
		"cong_deleted":        []any{},
		"cong_schedule":       []any{},
		"cong_sourceMaterial": []any{},
		"cong_swsPocket":      []any{},
	}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/", "ana@example.com", body)
	req = testutil.WithChiURLParam(req, "id", cong.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleSaveBackup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestBackup_SaveAndRetrieve(t *testing.T) {
	h, f := newHandler(t, congregations.Config{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := f.CreateCongregation(ctx, "Central", "MG", 123)
	f.CreateUser(ctx, "ana", "ana@example.com", cong.ID.Hex(), []string{"admin"})

	body := map[string]any{
		"cong_persons":        []map[string]any{{"person_uid": "p1"}},
		"cong_deleted":        []any{},
		"cong_schedule":       []any{},
		"cong_sourceMaterial": []any{},
		"cong_swsPocket":      []any{},
		"cong_settings":       []map[string]any{{"class_count": 1}},
	}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/", "ana@example.com", body)
	req = testutil.WithChiURLParam(req, "id", cong.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleSaveBackup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("save status: got %d (%s)", rec.Code, rec.Body.String())
	}
	if got := testutil.MessageCode(t, rec); got != "BACKUP_SENT" {
		t.Errorf("code: got %q, want %q", got, "BACKUP_SENT")
	}

	req = testutil.NewJSONRequest(t, http.MethodGet, "/", "ana@example.com", nil)
	req = testutil.WithChiURLParam(req, "id", cong.ID.Hex())
	rec = httptest.NewRecorder()
	h.ServeLastBackup(rec, req)

	var info models.BackupInfo
	testutil.DecodeJSONBody(t, rec, &info)
	if info.By != "ana@example.com" {
		t.Errorf("backup by: got %q, want the caller email", info.By)
	}
	if info.Date.IsZero() {
		t.Error("backup date must be stamped")
	}

	req = testutil.NewJSONRequest(t, http.MethodGet, "/", "ana@example.com", nil)
	req = testutil.WithChiURLParam(req, "id", cong.ID.Hex())
	rec = httptest.NewRecorder()
	h.ServeBackup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("retrieve status: got %d (%s)", rec.Code, rec.Body.String())
	}
	var backup struct {
		CongPersons []map[string]any `json:"cong_persons"`
	}
	testutil.DecodeJSONBody(t, rec, &backup)
	if len(backup.CongPersons) != 1 || backup.CongPersons[0]["person_uid"] != "p1" {
		t.Errorf("cong_persons: got %v", backup.CongPersons)
	}
}

func TestServeCountries_RejectsUnsupportedLanguage(t *testing.T) {
	// the language guard runs before any directory call, so no backing
	// services are needed
	out := outcome.New(nil, zap.NewNop(), outcome.ModeOff)
	h := &congregations.Handler{Out: out, Log: zap.NewNop()}

	req := testutil.NewJSONRequest(t, http.MethodGet, "/api/congregations/countries", "ana@example.com", nil)
	req.Header.Set("language", "fr")
	rec := httptest.NewRecorder()
	h.ServeCountries(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeCongregationList_RequiresCountry(t *testing.T) {
	out := outcome.New(nil, zap.NewNop(), outcome.ModeOff)
	h := &congregations.Handler{Out: out, Log: zap.NewNop()}

	req := testutil.NewJSONRequest(t, http.MethodGet, "/api/congregations/list", "ana@example.com", nil)
	req.Header.Set("language", "mg")
	rec := httptest.NewRecorder()
	h.ServeCongregationList(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeCongregationList_LowercaseLanguageAccepted(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"congName":"Central"}]`))
	}))
	defer upstream.Close()

	out := outcome.New(nil, zap.NewNop(), outcome.ModeOff)
	h := &congregations.Handler{
		Out:       out,
		Log:       zap.NewNop(),
		Directory: directory.New(upstream.URL, upstream.URL, upstream.URL, zap.NewNop()),
	}

	req := testutil.NewJSONRequest(t, http.MethodGet, "/api/congregations/list", "ana@example.com", nil)
	req.Header.Set("language", "mg")
	req.Header.Set("country", "mg")
	rec := httptest.NewRecorder()
	h.ServeCongregationList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
}
