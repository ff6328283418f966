package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"testing"

	"ontheway-api/config"
	"ontheway-api/models"
	"ontheway-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const adminEmail = "admin@ontheway.dev"

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	config.DB = db

	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Uname:        "Admin",
		Email:        adminEmail,
		PasswordHash: string(hash),
		AdminFlag:    models.AdminYes,
	}).Error)

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestRegisterAndLoginFlow(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"uname": "Ana", "email": "ana@x.com", "password": "1234",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/register", gin.H{
		"uname": "Ana", "email": "ana@x.com", "password": "1234",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", gin.H{"email": "ana@x.com", "password": "1234"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Message string      `json:"message"`
		Token   string      `json:"token"`
		User    models.User `json:"user"`
	}
	decode(t, w, &login)
	assert.Equal(t, "Success", login.Message)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, models.AdminNo, login.User.AdminFlag)

	// Wrong password and unknown email differ in status code only.
	w = doJSON(t, r, http.MethodPost, "/login", gin.H{"email": "ana@x.com", "password": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, r, http.MethodPost, "/login", gin.H{"email": "ghost@x.com", "password": "1234"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileAndPasswordEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"uname": "Ana", "email": "ana@x.com", "password": "1234",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPut, "/user/profile", gin.H{
		"currentEmail": "ana@x.com", "uname": "Ana Maria", "phone": "99887766",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		User models.User `json:"user"`
	}
	decode(t, w, &profile)
	assert.Equal(t, "Ana Maria", profile.User.Uname)

	w = doJSON(t, r, http.MethodPut, "/user/profile", gin.H{"uname": "NoKey"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/user/password", gin.H{
		"email": "ana@x.com", "currentPassword": "wrong", "newPassword": "abcd",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/user/password", gin.H{
		"email": "ana@x.com", "currentPassword": "1234", "newPassword": "abcd",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", gin.H{"email": "ana@x.com", "password": "abcd"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminPlaceLifecycle(t *testing.T) {
	r := setupRouter(t)

	// Non-admin actors are rejected and nothing is created.
	w := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"uname": "Ana", "email": "ana@x.com", "password": "1234",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/admin/place", gin.H{"email": "ana@x.com", "name": "Muscat"}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/admin/place", gin.H{"email": adminEmail, "name": "Muscat", "city": "Muscat"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Place models.Place `json:"place"`
	}
	decode(t, w, &created)

	w = doJSON(t, r, http.MethodPost, "/admin/place", gin.H{"email": adminEmail, "name": "Muscat"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = doJSON(t, r, http.MethodPost, "/admin/place", gin.H{"email": adminEmail, "name": "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/places", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Places []models.Place `json:"places"`
	}
	decode(t, w, &listed)
	require.Len(t, listed.Places, 1)

	// Rename cascades to delegates.
	w = doJSON(t, r, http.MethodPost, "/admin/delegate", gin.H{
		"email": adminEmail, "name": "Omar", "phone": "911", "fee": 2.5, "place": "Muscat",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	placePath := "/admin/place/" + itoa(created.Place.ID)
	w = doJSON(t, r, http.MethodPut, placePath, gin.H{"email": adminEmail, "name": "Muscat City", "city": "Muscat"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/delegates/"+url.PathEscape("Muscat City"), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var delegates struct {
		Delegates []models.Delegate `json:"delegates"`
	}
	decode(t, w, &delegates)
	require.Len(t, delegates.Delegates, 1)
	assert.Equal(t, "Omar", delegates.Delegates[0].Name)

	w = doJSON(t, r, http.MethodGet, "/delegates/Muscat", nil, nil)
	decode(t, w, &delegates)
	assert.Empty(t, delegates.Delegates)

	// Delete deactivates the place and purges its delegates.
	w = doJSON(t, r, http.MethodDelete, placePath, gin.H{"email": adminEmail}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/places", nil, nil)
	decode(t, w, &listed)
	assert.Empty(t, listed.Places)

	w = doJSON(t, r, http.MethodGet, "/delegates/"+url.PathEscape("Muscat City"), nil, nil)
	decode(t, w, &delegates)
	assert.Empty(t, delegates.Delegates)

	w = doJSON(t, r, http.MethodDelete, placePath, gin.H{"email": adminEmail}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminActorFromBearerToken(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/login", gin.H{"email": adminEmail, "password": "adminpass"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	decode(t, w, &login)
	require.NotEmpty(t, login.Token)

	// No email in the body: identity comes from the verified token.
	w = doJSON(t, r, http.MethodPost, "/admin/place", gin.H{"name": "Nizwa"},
		map[string]string{"Authorization": "Bearer " + login.Token})
	assert.Equal(t, http.StatusCreated, w.Code)

	// A garbage token falls back to the body email, which is absent here.
	w = doJSON(t, r, http.MethodPost, "/admin/place", gin.H{"name": "Sur"},
		map[string]string{"Authorization": "Bearer not-a-token"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDelegateEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/admin/place", gin.H{"email": adminEmail, "name": "Muscat"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/admin/delegate", gin.H{
		"email": adminEmail, "name": "Omar", "phone": "911", "place": "Muscat",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code) // fee missing

	w = doJSON(t, r, http.MethodPost, "/admin/delegate", gin.H{
		"email": adminEmail, "name": "Omar", "phone": "911", "fee": 2.5, "place": "Nowhere",
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/admin/delegate", gin.H{
		"email": adminEmail, "name": "Omar", "phone": "911", "fee": 2.5, "place": "Muscat",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Delegate models.Delegate `json:"delegate"`
	}
	decode(t, w, &created)
	assert.Equal(t, 4.5, created.Delegate.Rating)

	delegatePath := "/admin/delegate/" + itoa(created.Delegate.ID)
	w = doJSON(t, r, http.MethodPut, delegatePath, gin.H{
		"email": adminEmail, "name": "Omar", "phone": "999", "fee": 3,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var updated struct {
		Delegate models.Delegate `json:"delegate"`
	}
	decode(t, w, &updated)
	assert.Equal(t, "999", updated.Delegate.Phone)
	assert.Equal(t, "Muscat", updated.Delegate.Place)

	w = doJSON(t, r, http.MethodDelete, delegatePath, gin.H{"email": adminEmail}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodDelete, delegatePath, gin.H{"email": adminEmail}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
