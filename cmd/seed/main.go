// Command seed populates the database with sample users and referrals for
// local development. Rows are created through the store, so duplicate codes
// from a previous run are skipped rather than failed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/esperenza/referral-exchange/internal/config"
	"github.com/esperenza/referral-exchange/internal/domain"
	"github.com/esperenza/referral-exchange/internal/logger"
	"github.com/esperenza/referral-exchange/internal/store"
	"github.com/esperenza/referral-exchange/internal/store/schema"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

type seedReferral struct {
	name        string
	code        string
	reward      string
	description string
	category    string
	maxUsage    int
}

var sampleReferrals = []seedReferral{
	{
		name:        "Perplexity",
		code:        "PERPLEXITY50",
		reward:      "50 Points + Premium Access",
		description: "Get 50 points and 1 month of Perplexity Pro",
		category:    "ai",
		maxUsage:    100,
	},
	{
		name:        "Comet",
		code:        "COMET25",
		reward:      "25 Points + Free Credits",
		description: "Earn 25 points and get $10 in Comet credits",
		category:    "ai",
		maxUsage:    50,
	},
	{
		name:        "Gemini",
		code:        "GEMINI75",
		reward:      "75 Points + Advanced Features",
		description: "Earn 75 points and unlock Gemini Advanced features",
		category:    "ai",
		maxUsage:    150,
	},
	{
		name:        "ChatGPT",
		code:        "CHATGPT30",
		reward:      "30 Points + Plus Subscription",
		description: "Get 30 points and 1 month of ChatGPT Plus",
		category:    "ai",
		maxUsage:    80,
	},
	{
		name:        "Binance",
		code:        "BINANCE20",
		reward:      "20 Points + Trading Fee Discount",
		description: "Earn 20 points and get 10% trading fee discount",
		category:    "crypto",
		maxUsage:    1000,
	},
	{
		name:        "Coinbase",
		code:        "COINBASE15",
		reward:      "15 Points + $5 Bonus",
		description: "Get 15 points and $5 in Bitcoin",
		category:    "crypto",
		maxUsage:    500,
	},
	{
		name:        "Kraken",
		code:        "KRAKEN25",
		reward:      "25 Points + VIP Support",
		description: "Earn 25 points and get VIP customer support",
		category:    "crypto",
		maxUsage:    300,
	},
}

var samplePhones = []string{
	"+14155550100",
	"+14155550101",
	"+14155550102",
}

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadSeedConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx := context.Background()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "seed",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	dataStore := store.NewPGStore(db)

	owner, err := ensureOwner(ctx, dataStore)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to seed users", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Seeding referrals", zap.Int64("owner_user_id", owner.ID))

	created := 0
	for _, ref := range sampleReferrals {
		maxUsage := ref.maxUsage
		_, err := dataStore.CreateReferral(ctx, store.CreateReferralInput{
			Code:        ref.code,
			Name:        ref.name,
			Reward:      ref.reward,
			MaxUsage:    &maxUsage,
			Category:    ref.category,
			Description: ref.description,
			OwnerUserID: owner.ID,
		})
		if errors.Is(err, domain.ErrDuplicateCode) {
			logger.InfoCtx(ctx, "Referral already exists, skipping", zap.String("code", ref.code))
			continue
		}
		if err != nil {
			logger.FatalCtx(ctx, "Failed to seed referral", zap.Error(err), zap.String("code", ref.code))
		}
		created++
	}

	logger.InfoCtx(ctx, "Seed complete",
		zap.Int("referrals_created", created),
		zap.Int("referrals_skipped", len(sampleReferrals)-created),
	)
}

// ensureOwner creates the sample users if missing and returns the first one,
// who owns every seeded referral
func ensureOwner(ctx context.Context, s store.Store) (*schema.User, error) {
	var owner *schema.User
	for i, phone := range samplePhones {
		user, err := s.GetUserByPhone(ctx, phone)
		if err != nil {
			return nil, fmt.Errorf("failed to look up user %s: %w", phone, err)
		}
		if user == nil {
			user, err = s.CreateUser(ctx, store.CreateUserInput{PhoneE164: phone})
			if err != nil {
				return nil, fmt.Errorf("failed to create user %s: %w", phone, err)
			}
		}
		if i == 0 {
			owner = user
		}
	}
	return owner, nil
}
