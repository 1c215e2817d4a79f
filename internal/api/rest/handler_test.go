package rest_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esperenza/referral-exchange/internal/api/rest"
	"github.com/esperenza/referral-exchange/internal/api/rest/dto"
	"github.com/esperenza/referral-exchange/internal/domain"
	"github.com/esperenza/referral-exchange/internal/logger"
	"github.com/esperenza/referral-exchange/internal/mocks"
	"github.com/esperenza/referral-exchange/internal/orchestrator"
	"github.com/esperenza/referral-exchange/internal/store"
	"github.com/esperenza/referral-exchange/internal/store/schema"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testHandlerMocks contains all the mocks needed for testing the REST handlers
type testHandlerMocks struct {
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	orch    *mocks.MockOrchestrator
	handler rest.Handler
}

// setupTest creates all the mocks and the handler for testing
func setupTest(t *testing.T) *testHandlerMocks {
	ctrl := gomock.NewController(t)

	mockStore := mocks.NewMockStore(ctrl)
	mockOrch := mocks.NewMockOrchestrator(ctrl)

	return &testHandlerMocks{
		ctrl:    ctrl,
		store:   mockStore,
		orch:    mockOrch,
		handler: rest.NewHandler(mockStore, mockOrch),
	}
}

// tearDownTest cleans up the test mocks
func tearDownTest(tm *testHandlerMocks) {
	tm.ctrl.Finish()
}

// performJSON runs a request with an optional JSON body through the given route
func performJSON(handler gin.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	router := gin.New()
	router.Handle(method, "/api/v1/referrals/available", handler)
	router.Handle(method, "/api/v1/referrals/user", handler)
	router.Handle(method, "/api/v1/referrals", handler)
	router.Handle(method, "/api/v1/referrals/redeem", handler)
	router.Handle(method, "/api/v1/users/:user_id/points", handler)
	router.Handle(method, "/health", handler)

	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func testReferralRow() *schema.Referral {
	maxUsage := 100
	return &schema.Referral{
		ID:          10,
		Code:        "SUMMER_SALE",
		Name:        "Summer Sale",
		Reward:      "20% off first order",
		MaxUsage:    &maxUsage,
		UsageCount:  3,
		IsActive:    true,
		Category:    "retail",
		OwnerUserID: 1,
	}
}

func TestHealthCheck(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	w := performJSON(tm.handler.HealthCheck, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListAvailableReferrals(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.store.EXPECT().
		ListAvailableReferrals(gomock.Any(), store.ReferralQueryFilter{
			Search:   "sale",
			Category: "retail",
			Limit:    10,
			Offset:   20,
		}).
		Return([]*schema.Referral{testReferralRow()}, nil)

	w := performJSON(tm.handler.ListAvailableReferrals, http.MethodGet,
		"/api/v1/referrals/available?search=sale&category=retail&limit=10&offset=20", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ReferralListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Referrals, 1)
	assert.Equal(t, "SUMMER_SALE", response.Referrals[0].Code)
}

func TestListAvailableReferrals_InvalidLimit(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	w := performJSON(tm.handler.ListAvailableReferrals, http.MethodGet,
		"/api/v1/referrals/available?limit=banana", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListAvailableReferrals_ClampsLimit(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.store.EXPECT().
		ListAvailableReferrals(gomock.Any(), store.ReferralQueryFilter{Limit: 100}).
		Return([]*schema.Referral{}, nil)

	w := performJSON(tm.handler.ListAvailableReferrals, http.MethodGet,
		"/api/v1/referrals/available?limit=5000", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListUserReferrals(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.store.EXPECT().GetUserByID(gomock.Any(), int64(1)).
		Return(&schema.User{ID: 1, PhoneE164: "+14155550100"}, nil)
	tm.store.EXPECT().ListReferralsByOwner(gomock.Any(), int64(1)).
		Return([]*schema.Referral{testReferralRow()}, nil)

	w := performJSON(tm.handler.ListUserReferrals, http.MethodGet,
		"/api/v1/referrals/user?user_id=1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListUserReferrals_MissingUserID(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	w := performJSON(tm.handler.ListUserReferrals, http.MethodGet,
		"/api/v1/referrals/user", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListUserReferrals_UserNotFound(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.store.EXPECT().GetUserByID(gomock.Any(), int64(99)).Return(nil, nil)

	w := performJSON(tm.handler.ListUserReferrals, http.MethodGet,
		"/api/v1/referrals/user?user_id=99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateReferral(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	receipt := &domain.LedgerReceipt{TxHash: "0xabc123", BlockNumber: 4242}

	tm.orch.EXPECT().
		Create(gomock.Any(), orchestrator.CreateInput{
			Name:        "Summer Sale",
			Code:        "SUMMER_SALE",
			Reward:      "20% off first order",
			Category:    "retail",
			OwnerUserID: 1,
		}).
		Return(&orchestrator.CreateResult{
			Path:     domain.PathLedgerDB,
			Referral: testReferralRow(),
			Receipt:  receipt,
		}, nil)

	w := performJSON(tm.handler.CreateReferral, http.MethodPost, "/api/v1/referrals",
		dto.CreateReferralRequest{
			Name:        "Summer Sale",
			Code:        "SUMMER_SALE",
			Reward:      "20% off first order",
			Category:    "retail",
			OwnerUserID: 1,
		})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.CreateReferralResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, domain.PathLedgerDB, response.Path)
	require.NotNil(t, response.Receipt)
	assert.Equal(t, "0xabc123", response.Receipt.TxHash)
	assert.Empty(t, response.LedgerError)
}

func TestCreateReferral_DatabaseOnlyFallback(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.orch.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(&orchestrator.CreateResult{
			Path:      domain.PathDBOnly,
			Referral:  testReferralRow(),
			LedgerErr: errors.New("rpc unavailable"),
		}, nil)

	w := performJSON(tm.handler.CreateReferral, http.MethodPost, "/api/v1/referrals",
		dto.CreateReferralRequest{Name: "Summer Sale", Code: "SUMMER_SALE", OwnerUserID: 1})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.CreateReferralResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, domain.PathDBOnly, response.Path)
	assert.Nil(t, response.Receipt)
	assert.Equal(t, "rpc unavailable", response.LedgerError)
}

func TestCreateReferral_LedgerOnlyPartialFailure(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	receipt := &domain.LedgerReceipt{TxHash: "0xabc123", BlockNumber: 4242}

	tm.orch.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(&orchestrator.CreateResult{
			Path:       domain.PathLedgerOnly,
			Receipt:    receipt,
			PersistErr: errors.New("connection reset by peer"),
		}, nil)

	w := performJSON(tm.handler.CreateReferral, http.MethodPost, "/api/v1/referrals",
		dto.CreateReferralRequest{Name: "Summer Sale", Code: "SUMMER_SALE", OwnerUserID: 1})

	// The receipt comes back even though the row was never written.
	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.CreateReferralResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, domain.PathLedgerOnly, response.Path)
	require.NotNil(t, response.Receipt)
	assert.Equal(t, "connection reset by peer", response.PersistError)
}

func TestCreateReferral_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{"duplicate code", domain.ErrDuplicateCode, http.StatusConflict},
		{"invalid code", domain.ErrInvalidCode, http.StatusUnprocessableEntity},
		{"non-positive max usage", domain.ErrInvalidMaxUsage, http.StatusUnprocessableEntity},
		{"owner not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"contract rejection", domain.NewLedgerRejectedError("Code already exists"), http.StatusConflict},
		{"unexpected failure", errors.New("database is down"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tm := setupTest(t)
			defer tearDownTest(tm)

			tm.orch.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			w := performJSON(tm.handler.CreateReferral, http.MethodPost, "/api/v1/referrals",
				dto.CreateReferralRequest{Name: "Summer Sale", Code: "SUMMER_SALE", OwnerUserID: 1})

			assert.Equal(t, tc.statusCode, w.Code)
		})
	}
}

func TestCreateReferral_MissingRequiredFields(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	w := performJSON(tm.handler.CreateReferral, http.MethodPost, "/api/v1/referrals",
		map[string]interface{}{"name": "No code"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReferral_NonPositiveMaxUsageRejectedAtBinding(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	w := performJSON(tm.handler.CreateReferral, http.MethodPost, "/api/v1/referrals",
		map[string]interface{}{
			"name":          "Summer Sale",
			"code":          "SUMMER_SALE",
			"owner_user_id": 1,
			"max_usage":     -5,
		})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRedeemReferral(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	wallet := "0x7a16fF8270133F063aAb6C9977183D9e72835428"
	owner := &schema.User{ID: 1, PhoneE164: "+14155550100", WalletAddress: &wallet}
	referral := testReferralRow()
	referral.Owner = owner
	receipt := &domain.LedgerReceipt{TxHash: "0xdef456", BlockNumber: 4250}

	tm.orch.EXPECT().
		Redeem(gomock.Any(), orchestrator.RedeemInput{
			Code:            "SUMMER_SALE",
			RedeemingUserID: 2,
		}).
		Return(&orchestrator.RedeemResult{
			Path:          domain.PathLedgerDB,
			Referral:      referral,
			Owner:         owner,
			PointsAwarded: 10,
			Receipt:       receipt,
		}, nil)

	w := performJSON(tm.handler.RedeemReferral, http.MethodPost, "/api/v1/referrals/redeem",
		dto.RedeemReferralRequest{Code: "SUMMER_SALE", UserID: 2})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.RedeemReferralResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, domain.PathLedgerDB, response.Path)
	assert.Equal(t, 10, response.PointsAwarded)
	require.NotNil(t, response.OwnerContact)
	assert.Equal(t, "+14155550100", response.OwnerContact.PhoneE164)
	require.NotNil(t, response.Receipt)
	assert.Equal(t, "0xdef456", response.Receipt.TxHash)
}

func TestRedeemReferral_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{"referral not found", domain.ErrReferralNotFound, http.StatusNotFound},
		{"exhausted", domain.ErrReferralExhausted, http.StatusGone},
		{"inactive", domain.ErrReferralInactive, http.StatusGone},
		{"self redeem", domain.ErrSelfRedeemBlocked, http.StatusForbidden},
		{"invalid code", domain.ErrInvalidCode, http.StatusUnprocessableEntity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tm := setupTest(t)
			defer tearDownTest(tm)

			tm.orch.EXPECT().Redeem(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			w := performJSON(tm.handler.RedeemReferral, http.MethodPost, "/api/v1/referrals/redeem",
				dto.RedeemReferralRequest{Code: "SUMMER_SALE", UserID: 2})

			assert.Equal(t, tc.statusCode, w.Code)
		})
	}
}

func TestRedeemReferral_ContactHiddenOnPartialFailure(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	receipt := &domain.LedgerReceipt{TxHash: "0xdef456", BlockNumber: 4250}

	tm.orch.EXPECT().Redeem(gomock.Any(), gomock.Any()).
		Return(&orchestrator.RedeemResult{
			Path:       domain.PathLedgerOnly,
			Receipt:    receipt,
			PersistErr: errors.New("deadlock detected"),
		}, nil)

	w := performJSON(tm.handler.RedeemReferral, http.MethodPost, "/api/v1/referrals/redeem",
		dto.RedeemReferralRequest{Code: "SUMMER_SALE", UserID: 2})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.RedeemReferralResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, domain.PathLedgerOnly, response.Path)
	assert.Nil(t, response.OwnerContact)
	assert.Equal(t, "deadlock detected", response.PersistError)
}

func TestGetUserPoints(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	referralID := int64(10)
	tm.store.EXPECT().GetUserByID(gomock.Any(), int64(1)).
		Return(&schema.User{ID: 1, PhoneE164: "+14155550100"}, nil)
	tm.store.EXPECT().ListUserPoints(gomock.Any(), int64(1)).
		Return([]*schema.UserPoints{
			{ID: 2, UserID: 1, Points: 10, Source: domain.PointsSourceReferralRedeemed, ReferralID: &referralID},
			{ID: 1, UserID: 1, Points: 10, Source: domain.PointsSourceReferralRedeemed, ReferralID: &referralID},
		}, int64(20), nil)

	w := performJSON(tm.handler.GetUserPoints, http.MethodGet, "/api/v1/users/1/points", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.UserPointsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(1), response.UserID)
	assert.Equal(t, int64(20), response.TotalPoints)
	assert.Len(t, response.Entries, 2)
}

func TestGetUserPoints_InvalidUserID(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	w := performJSON(tm.handler.GetUserPoints, http.MethodGet, "/api/v1/users/abc/points", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserPoints_UserNotFound(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.store.EXPECT().GetUserByID(gomock.Any(), int64(42)).Return(nil, nil)

	w := performJSON(tm.handler.GetUserPoints, http.MethodGet, "/api/v1/users/42/points", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
