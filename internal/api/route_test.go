package api

import (
	"Keystone/internal/api/handler"
	"Keystone/internal/model"
	"Keystone/internal/pkg/bank"
	"Keystone/internal/pkg/security"
	"Keystone/internal/repository"
	"Keystone/internal/service"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiTest struct {
	t      *testing.T
	router *gin.Engine
	bank   *bank.MemoryBank
}

func newAPITest(t *testing.T) *apiTest {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ledger := repository.NewLedger(model.Settings{
		FeeRate:          250,
		MinTip:           100,
		MaxContentLength: 280,
		FeeCollector:     "deployer",
		Escrow:           "escrow",
	})
	b := bank.NewMemoryBank()
	notifications := service.NewNotificationService(ledger)
	profiles := service.NewProfileService(ledger)
	admin := service.NewAdminService(ledger)
	tips := service.NewTipService(ledger, b, notifications, 6)

	router := SetupRouter(&HandlersGroup{
		AuthHandler:         handler.NewAuthHandler(),
		ProfileHandler:      handler.NewProfileHandler(profiles),
		UserFollowHandler:   handler.NewUserFollowHandler(service.NewUserFollowService(ledger, notifications)),
		PostHandler:         handler.NewPostHandler(service.NewPostService(ledger, notifications)),
		PostActionHandler:   handler.NewPostActionHandler(service.NewPostActionService(ledger, notifications)),
		TipHandler:          handler.NewTipHandler(tips),
		NotificationHandler: handler.NewNotificationHandler(notifications),
		AdminHandler:        handler.NewAdminHandler(admin),
		WSHandler:           handler.NewWsHandler(profiles),
		AdminService:        admin,
	})
	return &apiTest{t: t, router: router, bank: b}
}

func (a *apiTest) do(method, path, principal string, body any) envelope {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if principal != "" {
		token, err := security.GenerateToken(principal)
		require.NoError(a.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	require.Equal(a.t, http.StatusOK, w.Code)

	var out envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (a *apiTest) register(userID string) {
	a.t.Helper()
	res := a.do(http.MethodPost, "/api/profiles", "p-"+userID, map[string]any{
		"user_id":      userID,
		"username":     userID,
		"display_name": userID,
	})
	require.Equal(a.t, service.Ok, res.Code, res.Message)
}

func TestRouter_SocialFlow(t *testing.T) {
	a := newAPITest(t)
	a.register("alice")
	a.register("bob")

	res := a.do(http.MethodPost, "/api/follows", "p-alice", map[string]any{"follower_id": "alice", "following_id": "bob"})
	assert.Equal(t, service.Ok, res.Code)

	res = a.do(http.MethodPost, "/api/follows", "p-alice", map[string]any{"follower_id": "alice", "following_id": "bob"})
	assert.Equal(t, service.AlreadyExists, res.Code)

	res = a.do(http.MethodGet, "/api/follows/alice/bob", "", nil)
	assert.JSONEq(t, `{"is_following":true}`, string(res.Data))

	res = a.do(http.MethodPost, "/api/posts", "p-bob", map[string]any{
		"author_id":            "bob",
		"content":              "hello @alice",
		"monetization_enabled": true,
	})
	require.Equal(t, service.Ok, res.Code, res.Message)
	assert.JSONEq(t, `{"post_id":1}`, string(res.Data))

	res = a.do(http.MethodPost, "/api/posts/1/like", "p-alice", map[string]any{"user_id": "alice"})
	assert.Equal(t, service.Ok, res.Code)

	res = a.do(http.MethodGet, "/api/posts/1", "", nil)
	var post map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &post))
	assert.Equal(t, float64(1), post["like_count"])
	assert.Equal(t, "public", post["visibility"])
	assert.Equal(t, "active", post["status"])

	res = a.do(http.MethodGet, "/api/posts/1/interactions/alice", "", nil)
	var interaction map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &interaction))
	assert.Equal(t, true, interaction["liked"])
	assert.Equal(t, true, interaction["exists"])

	res = a.do(http.MethodGet, "/api/notifications?user_id=alice", "p-alice", nil)
	require.Equal(t, service.Ok, res.Code, res.Message)
	var list struct {
		Items []map[string]any `json:"items"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "mention", list.Items[0]["type"])

	res = a.do(http.MethodGet, "/api/notifications?user_id=alice", "p-bob", nil)
	assert.Equal(t, service.Unauthorized, res.Code)
}

func TestRouter_Tip(t *testing.T) {
	a := newAPITest(t)
	a.register("alice")
	a.register("bob")
	require.NoError(t, a.bank.Credit(context.Background(), "p-alice", 10_000))

	res := a.do(http.MethodGet, "/api/tips/quote?amount=10000", "", nil)
	assert.JSONEq(t, `{"amount":10000,"fee_rate":250,"fee":250,"net":9750,"min_tip":100,"display":"0.010000"}`, string(res.Data))

	res = a.do(http.MethodPost, "/api/tips", "p-alice", map[string]any{"tipper_id": "alice", "recipient_id": "bob", "amount": 0})
	assert.Equal(t, service.InvalidAmount, res.Code)

	res = a.do(http.MethodPost, "/api/tips", "p-alice", map[string]any{"tipper_id": "alice", "recipient_id": "bob", "amount": 20_000})
	assert.Equal(t, service.InsufficientFunds, res.Code)

	res = a.do(http.MethodPost, "/api/tips", "p-alice", map[string]any{"tipper_id": "alice", "recipient_id": "bob", "amount": 4_000})
	require.Equal(t, service.Ok, res.Code, res.Message)
	var receipt map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &receipt))
	assert.Equal(t, float64(100), receipt["fee"])
	assert.Equal(t, float64(3_900), receipt["net"])

	fee, err := a.bank.Balance(context.Background(), "deployer")
	require.NoError(t, err)
	assert.Equal(t, uint64(100), fee)
}

func TestRouter_Auth(t *testing.T) {
	a := newAPITest(t)

	res := a.do(http.MethodPost, "/api/profiles", "", map[string]any{"user_id": "alice", "username": "alice", "display_name": "a"})
	assert.Equal(t, service.Unauthorized, res.Code)

	res = a.do(http.MethodGet, "/api/profiles/nobody", "", nil)
	assert.Equal(t, service.NotFound, res.Code)

	res = a.do(http.MethodPost, "/api/posts", "p-alice", map[string]any{"author_id": "alice"})
	assert.Equal(t, service.BadRequest, res.Code)
}

func TestRouter_Admin(t *testing.T) {
	a := newAPITest(t)
	a.register("alice")

	res := a.do(http.MethodPut, "/api/admin/fee-rate", "p-alice", map[string]any{"fee_rate": 100})
	assert.Equal(t, service.Unauthorized, res.Code)

	res = a.do(http.MethodPut, "/api/admin/fee-rate", "deployer", map[string]any{"fee_rate": 100})
	assert.Equal(t, service.Ok, res.Code)

	res = a.do(http.MethodPut, "/api/admin/fee-rate", "deployer", map[string]any{"fee_rate": 20_000})
	assert.Equal(t, service.BadRequest, res.Code)

	res = a.do(http.MethodPut, "/api/admin/profiles/alice/status", "deployer", map[string]any{"status": "suspended"})
	assert.Equal(t, service.Ok, res.Code)

	res = a.do(http.MethodGet, "/api/profiles/alice", "", nil)
	var profile map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &profile))
	assert.Equal(t, "suspended", profile["status"])

	res = a.do(http.MethodGet, "/api/admin/settings", "deployer", nil)
	var settings map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &settings))
	assert.Equal(t, float64(100), settings["fee_rate"])
	assert.Equal(t, "deployer", settings["fee_collector"])
}
