package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/esperenza/referral-exchange/internal/domain"
	"github.com/esperenza/referral-exchange/internal/store/schema"
)

const defaultListLimit = 50

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// If any of the pool settings are 0, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// CreateUser registers a new user
func (s *pgStore) CreateUser(ctx context.Context, input CreateUserInput) (*schema.User, error) {
	user := schema.User{
		PhoneE164:     input.PhoneE164,
		WalletAddress: input.WalletAddress,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by its internal ID
func (s *pgStore) GetUserByID(ctx context.Context, userID int64) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByPhone retrieves a user by phone number
func (s *pgStore) GetUserByPhone(ctx context.Context, phoneE164 string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("phone_e164 = ?", phoneE164).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// CreateReferral persists a new referral with the ledger receipt attached when one exists
func (s *pgStore) CreateReferral(ctx context.Context, input CreateReferralInput) (*schema.Referral, error) {
	referral := schema.Referral{
		Code:        input.Code,
		Name:        input.Name,
		Reward:      input.Reward,
		MaxUsage:    input.MaxUsage,
		Category:    input.Category,
		Description: input.Description,
		OwnerUserID: input.OwnerUserID,
		IsActive:    true,
	}
	if input.Receipt != nil {
		txHash := input.Receipt.TxHash
		blockNumber := input.Receipt.BlockNumber
		referral.LedgerTxHash = &txHash
		referral.LedgerBlockNumber = &blockNumber
	}

	err := s.db.WithContext(ctx).Create(&referral).Error
	if err != nil {
		// Requires gorm's TranslateError so the unique violation on code
		// surfaces as ErrDuplicatedKey regardless of driver.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateCode
		}
		return nil, fmt.Errorf("failed to create referral: %w", err)
	}

	return &referral, nil
}

// GetReferralByID retrieves a referral by its internal ID
func (s *pgStore) GetReferralByID(ctx context.Context, referralID int64) (*schema.Referral, error) {
	var referral schema.Referral
	err := s.db.WithContext(ctx).Where("id = ?", referralID).First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get referral: %w", err)
	}
	return &referral, nil
}

// GetReferralByCode retrieves a referral by its code. Codes are case-sensitive.
func (s *pgStore) GetReferralByCode(ctx context.Context, code string) (*schema.Referral, error) {
	var referral schema.Referral
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get referral: %w", err)
	}
	return &referral, nil
}

// ListAvailableReferrals lists active, non-exhausted referrals, newest first
func (s *pgStore) ListAvailableReferrals(ctx context.Context, filter ReferralQueryFilter) ([]*schema.Referral, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := s.db.WithContext(ctx).
		Model(&schema.Referral{}).
		Where("is_active = ?", true).
		Where("max_usage IS NULL OR usage_count < max_usage")

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}

	var referrals []*schema.Referral
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&referrals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available referrals: %w", err)
	}

	return referrals, nil
}

// ListReferralsByOwner lists a user's own referrals, newest first
func (s *pgStore) ListReferralsByOwner(ctx context.Context, ownerUserID int64) ([]*schema.Referral, error) {
	var referrals []*schema.Referral
	err := s.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at DESC").
		Find(&referrals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list referrals by owner: %w", err)
	}
	return referrals, nil
}

// RedeemReferral performs the database side of a redemption in a single transaction.
// The usage counter is advanced with a conditional UPDATE so that N concurrent
// redeemers racing for the last slot under max_usage cannot all succeed.
func (s *pgStore) RedeemReferral(ctx context.Context, input RedeemReferralInput) (*RedeemReferralResult, error) {
	var result RedeemReferralResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Compare-and-increment: the WHERE clause re-checks the cap and the
		// active flag at update time, never via a prior read.
		res := tx.Model(&schema.Referral{}).
			Where("id = ?", input.ReferralID).
			Where("is_active = ?", true).
			Where("max_usage IS NULL OR usage_count < max_usage").
			UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to increment usage count: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			// Nothing advanced; re-read to tell the caller why.
			var referral schema.Referral
			err := tx.Where("id = ?", input.ReferralID).First(&referral).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrReferralNotFound
				}
				return fmt.Errorf("failed to classify rejected redemption: %w", err)
			}
			if !referral.IsActive {
				return domain.ErrReferralInactive
			}
			return domain.ErrReferralExhausted
		}

		var referral schema.Referral
		if err := tx.Preload("Owner").Where("id = ?", input.ReferralID).First(&referral).Error; err != nil {
			return fmt.Errorf("failed to reload referral: %w", err)
		}

		pointsRow := schema.UserPoints{
			UserID:      referral.OwnerUserID,
			Points:      input.Points,
			Source:      domain.PointsSourceReferralRedeemed,
			Description: input.Description,
			ReferralID:  &referral.ID,
		}
		if err := tx.Create(&pointsRow).Error; err != nil {
			return fmt.Errorf("failed to append points row: %w", err)
		}

		result.Referral = &referral
		result.PointsRow = &pointsRow
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ListUserPoints returns a user's point awards newest first plus the recomputed total
func (s *pgStore) ListUserPoints(ctx context.Context, userID int64) ([]*schema.UserPoints, int64, error) {
	var points []*schema.UserPoints
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&points).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list user points: %w", err)
	}

	// The total is summed from the row set just read, never a cached column
	// or a second statement, so it always agrees with the returned rows even
	// when an award lands concurrently.
	var total int64
	for _, p := range points {
		total += int64(p.Points)
	}

	return points, total, nil
}
