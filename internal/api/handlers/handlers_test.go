package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/formforge/formforge/internal/api/middleware"
	"github.com/formforge/formforge/internal/application"
	"github.com/formforge/formforge/internal/config"
	"github.com/formforge/formforge/internal/domain/schema"
	"github.com/formforge/formforge/internal/repository"
	"github.com/formforge/formforge/internal/testutils"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	config.AuthDisabled = true
	config.JwtSecret = "test-secret"
	config.Issuer = "test"
	config.AdminPassword = "secret"
	middleware.Init()

	repos := repository.NewFileRepositories(filepath.Join(t.TempDir(), "forms.json"))
	return testutils.SetupRouter(application.New(repos))
}

// doRequest is a generalized helper to make JSON HTTP requests in tests.
func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}, expectStatus int) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(raw))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, expectStatus, resp.Code, "body: %s", resp.Body.String())
	return resp
}

func decodeJSON[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestDraftLifecycle(t *testing.T) {
	router := newTestRouter(t)

	draft := decodeJSON[schema.FormSchema](t, doRequest(t, router, "GET", "/draft", "", nil, http.StatusOK))
	require.Empty(t, draft.Fields)
	require.Equal(t, "Untitled", draft.Name)

	first := decodeJSON[schema.Field](t, doRequest(t, router, "POST", "/draft/fields",
		"", schema.CreateFieldDTO{Type: schema.FieldTypeText}, http.StatusCreated))
	require.NotEmpty(t, first.ID)
	require.Equal(t, "text label", first.Label)

	second := decodeJSON[schema.Field](t, doRequest(t, router, "POST", "/draft/fields",
		"", schema.CreateFieldDTO{Type: schema.FieldTypeSelect}, http.StatusCreated))
	require.Equal(t, []string{"Option 1", "Option 2"}, second.Options)

	// Move the first field past the second.
	reordered := decodeJSON[schema.FormSchema](t, doRequest(t, router, "PUT", "/draft/fields/reorder",
		"", schema.ReorderFieldsDTO{From: 0, To: 1}, http.StatusOK))
	require.Equal(t, []string{second.ID, first.ID}, fieldIDs(reordered.Fields))

	updated := decodeJSON[schema.Field](t, doRequest(t, router, "PUT", "/draft/fields/"+first.ID,
		"", schema.UpdateFieldDTO{Label: "Full name", Required: true}, http.StatusOK))
	require.Equal(t, first.ID, updated.ID)
	require.Equal(t, "Full name", updated.Label)
	require.True(t, updated.Required)

	doRequest(t, router, "DELETE", "/draft/fields/"+second.ID, "", nil, http.StatusOK)
	draft = decodeJSON[schema.FormSchema](t, doRequest(t, router, "GET", "/draft", "", nil, http.StatusOK))
	require.Equal(t, []string{first.ID}, fieldIDs(draft.Fields))

	record := decodeJSON[schema.PersistedForm](t, doRequest(t, router, "POST", "/draft/save",
		"", schema.SaveFormDTO{Name: "Signup"}, http.StatusCreated))
	require.Equal(t, "Signup", record.Name)
	require.Len(t, record.Fields, 1)

	// Saving resets the draft.
	draft = decodeJSON[schema.FormSchema](t, doRequest(t, router, "GET", "/draft", "", nil, http.StatusOK))
	require.Empty(t, draft.Fields)

	forms := decodeJSON[[]schema.PersistedForm](t, doRequest(t, router, "GET", "/forms", "", nil, http.StatusOK))
	require.Len(t, forms, 1)
	require.Equal(t, record.ID, forms[0].ID)
}

func TestAddFieldRejectsUnknownType(t *testing.T) {
	router := newTestRouter(t)
	doRequest(t, router, "POST", "/draft/fields", "", map[string]string{"type": "slider"}, http.StatusBadRequest)
}

func TestUpdateFieldErrors(t *testing.T) {
	router := newTestRouter(t)

	doRequest(t, router, "PUT", "/draft/fields/missing", "", schema.UpdateFieldDTO{Label: "x"}, http.StatusNotFound)

	field := decodeJSON[schema.Field](t, doRequest(t, router, "POST", "/draft/fields",
		"", schema.CreateFieldDTO{Type: schema.FieldTypeNumber}, http.StatusCreated))

	doRequest(t, router, "PUT", "/draft/fields/"+field.ID, "", schema.UpdateFieldDTO{
		Label:   "Total",
		Derived: true,
		Parents: []string{field.ID},
		Formula: "{{" + field.ID + "}} * 2",
	}, http.StatusBadRequest)
}

func TestLoadSavedForm(t *testing.T) {
	router := newTestRouter(t)

	doRequest(t, router, "POST", "/draft/fields", "", schema.CreateFieldDTO{Type: schema.FieldTypeDate}, http.StatusCreated)
	record := decodeJSON[schema.PersistedForm](t, doRequest(t, router, "POST", "/draft/save",
		"", schema.SaveFormDTO{Name: "Booking"}, http.StatusCreated))

	doRequest(t, router, "POST", "/draft/load/does-not-exist", "", nil, http.StatusNotFound)

	loaded := decodeJSON[schema.FormSchema](t, doRequest(t, router, "POST", "/draft/load/"+record.ID,
		"", nil, http.StatusOK))
	require.Equal(t, "Booking", loaded.Name)
	require.Len(t, loaded.Fields, 1)
}

func TestFormEndpoints(t *testing.T) {
	router := newTestRouter(t)

	doRequest(t, router, "GET", "/forms/missing", "", nil, http.StatusNotFound)

	doRequest(t, router, "POST", "/draft/fields", "", schema.CreateFieldDTO{Type: schema.FieldTypeText}, http.StatusCreated)
	record := decodeJSON[schema.PersistedForm](t, doRequest(t, router, "POST", "/draft/save",
		"", schema.SaveFormDTO{Name: "Contact"}, http.StatusCreated))

	got := decodeJSON[schema.PersistedForm](t, doRequest(t, router, "GET", "/forms/"+record.ID, "", nil, http.StatusOK))
	require.Equal(t, record.Name, got.Name)

	doRequest(t, router, "DELETE", "/forms/"+record.ID, "", nil, http.StatusOK)
	forms := decodeJSON[[]schema.PersistedForm](t, doRequest(t, router, "GET", "/forms", "", nil, http.StatusOK))
	require.Empty(t, forms)
}

func TestPreviewEndpoints(t *testing.T) {
	router := newTestRouter(t)

	price := decodeJSON[schema.Field](t, doRequest(t, router, "POST", "/draft/fields",
		"", schema.CreateFieldDTO{Type: schema.FieldTypeNumber}, http.StatusCreated))
	doRequest(t, router, "PUT", "/draft/fields/"+price.ID, "", schema.UpdateFieldDTO{
		Label: "Price", Required: true, DefaultValue: 10,
	}, http.StatusOK)

	total := decodeJSON[schema.Field](t, doRequest(t, router, "POST", "/draft/fields",
		"", schema.CreateFieldDTO{Type: schema.FieldTypeNumber}, http.StatusCreated))
	doRequest(t, router, "PUT", "/draft/fields/"+total.ID, "", schema.UpdateFieldDTO{
		Label:   "Total",
		Derived: true,
		Parents: []string{price.ID},
		Formula: "{{" + price.ID + "}} * 2",
	}, http.StatusOK)

	initial := decodeJSON[map[string]map[string]any](t, doRequest(t, router, "POST", "/preview/values",
		"", nil, http.StatusOK))
	require.Equal(t, float64(10), initial["values"][price.ID])

	recomputed := decodeJSON[map[string]map[string]any](t, doRequest(t, router, "POST", "/preview/recompute",
		"", schema.PreviewValuesDTO{Values: map[string]any{price.ID: 10}}, http.StatusOK))
	require.Equal(t, float64(20), recomputed["values"][total.ID])

	validation := decodeJSON[map[string]any](t, doRequest(t, router, "POST", "/preview/validate",
		"", schema.PreviewValuesDTO{Values: map[string]any{price.ID: ""}}, http.StatusOK))
	require.Equal(t, false, validation["valid"])
	errs := validation["errors"].(map[string]any)
	require.Equal(t, "Required", errs[price.ID])

	result := decodeJSON[map[string]any](t, doRequest(t, router, "POST", "/preview/evaluate",
		"", schema.EvaluateDTO{
			Formula: "{{a}} + {{b}}",
			Values:  map[string]any{"a": "5", "b": 3},
		}, http.StatusOK))
	require.Equal(t, true, result["ok"])
	require.Equal(t, "53", result["value"])
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(t)

	config.AuthDisabled = false
	defer func() { config.AuthDisabled = true }()

	doRequest(t, router, "GET", "/draft", "", nil, http.StatusUnauthorized)
	doRequest(t, router, "POST", "/login", "", map[string]string{"password": "wrong"}, http.StatusUnauthorized)

	resp := decodeJSON[map[string]string](t, doRequest(t, router, "POST", "/login",
		"", map[string]string{"password": "secret"}, http.StatusOK))
	token := resp["token"]
	require.NotEmpty(t, token)

	doRequest(t, router, "GET", "/auth/status", token, nil, http.StatusOK)
	doRequest(t, router, "GET", "/draft", token, nil, http.StatusOK)
}

func fieldIDs(fields []schema.Field) []string {
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		ids = append(ids, f.ID)
	}
	return ids
}
