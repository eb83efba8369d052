package admin

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hut/internal/middleware"
	"hut/internal/pkg/jwt"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *jwt.Service) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t)
	h := NewHandler(svc)
	h.now = func() time.Time { return testNow }

	tokens := jwt.New("test-secret", time.Hour)
	r := gin.New()
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(tokens))
	h.RegisterRoutes(protected)
	return r, tokens
}

func do(t *testing.T, r *gin.Engine, method, path, token, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func token(t *testing.T, tokens *jwt.Service, userID, role string) string {
	t.Helper()
	tok, err := tokens.GenerateToken(userID, role)
	require.NoError(t, err)
	return tok
}

func TestHandler_RoleGates(t *testing.T) {
	r, tokens := newTestRouter(t)
	customer := token(t, tokens, "u1", "customer")
	hotelAdmin := token(t, tokens, "ha1", "hotel_admin")

	code, _ := do(t, r, http.MethodGet, "/api/v1/admin/hotels", customer, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = do(t, r, http.MethodPost, "/api/v1/admin/hotels", hotelAdmin, `{"name":"X","bankName":"Y","bankAccount":"Z"}`)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = do(t, r, http.MethodGet, "/api/v1/admin/owner-dashboard", hotelAdmin, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = do(t, r, http.MethodPost, "/api/v1/admin/hotels/h1/settle", hotelAdmin, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, env := do(t, r, http.MethodGet, "/api/v1/admin/hotels/h2/dashboard", hotelAdmin, "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
}

func TestHandler_CreateHotel(t *testing.T) {
	r, tokens := newTestRouter(t)
	owner := token(t, tokens, "pa", "platform_admin")

	code, env := do(t, r, http.MethodPost, "/api/v1/admin/hotels", owner,
		`{"name":"Ikoyi Bay","bankName":"Access","bankAccount":"1122334455","commissionPercent":15}`)
	require.Equal(t, http.StatusCreated, code)
	var res CreateHotelResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 0.15, res.Hotel.CommissionRate)

	code, env = do(t, r, http.MethodPost, "/api/v1/admin/hotels", owner, `{"name":"Ikoyi Bay"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, env = do(t, r, http.MethodPost, "/api/v1/admin/hotels", owner,
		`{"name":"Other","bankName":"A","bankAccount":"1","adminName":"A","adminEmail":"ops@zuma.ng","adminPassword":"long-enough"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "EMAIL_EXISTS", env.Error.Code)
}

func TestHandler_DashboardAndSettle(t *testing.T) {
	r, tokens := newTestRouter(t)
	hotelAdmin := token(t, tokens, "ha1", "hotel_admin")
	owner := token(t, tokens, "pa", "platform_admin")

	code, env := do(t, r, http.MethodGet, "/api/v1/admin/hotels/h1/dashboard", hotelAdmin, "")
	require.Equal(t, http.StatusOK, code)
	var d Dashboard
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, "2026-03-02", d.CheckInDate.String())
	assert.Equal(t, int64(44000), d.GrossSales)

	code, env = do(t, r, http.MethodGet, "/api/v1/admin/hotels/h1/dashboard?checkInDate=2026-03-05&checkOutDate=2026-03-04", hotelAdmin, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_STAY", env.Error.Code)

	code, _ = do(t, r, http.MethodPost, "/api/v1/admin/hotels/h1/subscription/renew", hotelAdmin, "")
	assert.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodPost, "/api/v1/admin/hotels/h1/settle", owner, "")
	require.Equal(t, http.StatusOK, code)
	var s Settlement
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.Equal(t, 3, s.Count, "booking, refund and premium rows")
	assert.Equal(t, int64(20000), s.NetPayout)

	code, _ = do(t, r, http.MethodGet, "/api/v1/admin/owner-dashboard", owner, "")
	assert.Equal(t, http.StatusOK, code)
}
