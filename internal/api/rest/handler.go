package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/esperenza/referral-exchange/internal/api/rest/dto"
	"github.com/esperenza/referral-exchange/internal/domain"
	"github.com/esperenza/referral-exchange/internal/orchestrator"
	"github.com/esperenza/referral-exchange/internal/store"
)

const maxListLimit = 100

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ListAvailableReferrals lists active, non-exhausted referrals
	// GET /api/v1/referrals/available?search=<text>&category=<category>&limit=<limit>&offset=<offset>
	ListAvailableReferrals(c *gin.Context)

	// ListUserReferrals lists the referrals owned by a user (requires authentication)
	// GET /api/v1/referrals/user?user_id=<id>
	ListUserReferrals(c *gin.Context)

	// CreateReferral registers a referral on the contract and persists it (requires authentication)
	// POST /api/v1/referrals
	CreateReferral(c *gin.Context)

	// RedeemReferral redeems a referral code (requires authentication)
	// POST /api/v1/referrals/redeem
	RedeemReferral(c *gin.Context)

	// GetUserPoints returns a user's point awards plus the recomputed total
	// GET /api/v1/users/:user_id/points
	GetUserPoints(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store store.Store
	orch  orchestrator.Orchestrator
}

// NewHandler creates a new REST API handler
func NewHandler(s store.Store, orch orchestrator.Orchestrator) Handler {
	return &handler{
		store: s,
		orch:  orch,
	}
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ListAvailableReferrals lists active, non-exhausted referrals
func (h *handler) ListAvailableReferrals(c *gin.Context) {
	filter := store.ReferralQueryFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}

	var err error
	filter.Limit, err = parsePositiveIntQuery(c, "limit", maxListLimit)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	filter.Offset, err = parsePositiveIntQuery(c, "offset", 0)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	referrals, err := h.store.ListAvailableReferrals(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err, "Failed to list referrals")
		return
	}

	c.JSON(http.StatusOK, dto.NewReferralListResponse(referrals))
}

// ListUserReferrals lists the referrals owned by a user
func (h *handler) ListUserReferrals(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		respondBadRequest(c, "Valid user_id is required")
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondInternalError(c, err, "Failed to look up user")
		return
	}
	if user == nil {
		respondNotFound(c, "User not found")
		return
	}

	referrals, err := h.store.ListReferralsByOwner(c.Request.Context(), userID)
	if err != nil {
		respondInternalError(c, err, "Failed to list referrals")
		return
	}

	c.JSON(http.StatusOK, dto.NewReferralListResponse(referrals))
}

// CreateReferral registers a referral on the contract and persists it
func (h *handler) CreateReferral(c *gin.Context) {
	var req dto.CreateReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.orch.Create(c.Request.Context(), orchestrator.CreateInput{
		Name:        req.Name,
		Code:        req.Code,
		Reward:      req.Reward,
		MaxUsage:    req.MaxUsage,
		Category:    req.Category,
		Description: req.Description,
		OwnerUserID: req.OwnerUserID,
	})
	if err != nil {
		h.respondDomainError(c, err, "Failed to create referral")
		return
	}

	response := dto.CreateReferralResponse{
		Path:     result.Path,
		Referral: dto.NewReferralResponse(result.Referral),
		Receipt:  dto.NewReceiptResponse(result.Receipt),
	}
	if result.LedgerErr != nil {
		response.LedgerError = result.LedgerErr.Error()
	}
	if result.PersistErr != nil {
		response.PersistError = result.PersistErr.Error()
	}

	// Partial outcomes still return the receipt so the caller can reconcile.
	c.JSON(http.StatusCreated, response)
}

// RedeemReferral redeems a referral code
func (h *handler) RedeemReferral(c *gin.Context) {
	var req dto.RedeemReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.orch.Redeem(c.Request.Context(), orchestrator.RedeemInput{
		Code:            req.Code,
		ReferralID:      req.ReferralID,
		RedeemingUserID: req.UserID,
	})
	if err != nil {
		h.respondDomainError(c, err, "Failed to redeem referral")
		return
	}

	response := dto.RedeemReferralResponse{
		Path:          result.Path,
		Referral:      dto.NewReferralResponse(result.Referral),
		OwnerContact:  dto.NewOwnerContactResponse(result.Owner),
		PointsAwarded: result.PointsAwarded,
		Receipt:       dto.NewReceiptResponse(result.Receipt),
	}
	if result.LedgerErr != nil {
		response.LedgerError = result.LedgerErr.Error()
	}
	if result.PersistErr != nil {
		response.PersistError = result.PersistErr.Error()
	}

	c.JSON(http.StatusOK, response)
}

// GetUserPoints returns a user's point awards plus the recomputed total
func (h *handler) GetUserPoints(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		respondBadRequest(c, "Valid user_id is required")
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondInternalError(c, err, "Failed to look up user")
		return
	}
	if user == nil {
		respondNotFound(c, "User not found")
		return
	}

	rows, total, err := h.store.ListUserPoints(c.Request.Context(), userID)
	if err != nil {
		respondInternalError(c, err, "Failed to list user points")
		return
	}

	c.JSON(http.StatusOK, dto.NewUserPointsResponse(userID, rows, total))
}

// respondDomainError maps domain errors onto the REST error taxonomy
func (h *handler) respondDomainError(c *gin.Context, err error, message string) {
	var rejected *domain.LedgerRejectedError

	switch {
	case errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrInvalidMaxUsage):
		respondValidationError(c, err.Error())
	case errors.Is(err, domain.ErrDuplicateCode):
		respondConflict(c, "Referral code already exists")
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrReferralNotFound):
		respondNotFound(c, err.Error())
	case errors.Is(err, domain.ErrReferralExhausted),
		errors.Is(err, domain.ErrReferralInactive):
		respondGone(c, err.Error())
	case errors.Is(err, domain.ErrSelfRedeemBlocked):
		respondForbidden(c, err.Error())
	case errors.As(err, &rejected):
		respondConflict(c, "Ledger rejected the transaction", rejected.Reason)
	case errors.Is(err, domain.ErrLedgerUnavailable):
		respondLedgerUnavailable(c, "Ledger unavailable")
	default:
		respondInternalError(c, err, message, zap.String("path", c.Request.URL.Path))
	}
}

// parsePositiveIntQuery reads a non-negative integer query parameter,
// clamping to max when max is non-zero
func parsePositiveIntQuery(c *gin.Context, name string, max int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}
	if max > 0 && value > max {
		value = max
	}
	return value, nil
}
