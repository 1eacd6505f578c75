package testdata

import (
	"fmt"
	"math/rand"
	"time"

	"fee_calculator/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Generator produces synthetic transaction requests for exercising the fee
// engine. Deterministic when seeded, which is what the tests rely on.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

var (
	transactionTypes = []domain.TransactionType{
		domain.TypePOS, domain.TypeECommerce, domain.TypeATM, domain.TypeTransfer,
	}
	currencies = []string{"USD", "GBP", "JPY", "CAD", "AUD", "CHF"}
	channels   = []string{"MOBILE", "WEB", "POS", "ATM", "BRANCH", "PHONE"}
	segments   = []domain.ClientSegment{domain.SegmentStandard, domain.SegmentPremium, domain.SegmentVIP}
	businesses = []domain.BusinessType{domain.BusinessIndividual, domain.BusinessCompany, domain.BusinessCorporate}
	riskLevels = []domain.RiskLevel{domain.RiskLow, domain.RiskMedium, domain.RiskHigh}
	promotions = []string{"SUMMER2025", "NEWCLIENT", "LOYALTY", "CASHBACK", "PREMIUM", "VOLUME_DISCOUNT"}
)

// Transactions generates count random requests with realistic amounts per
// transaction type.
func (g *Generator) Transactions(count int) []domain.TransactionRequest {
	transactions := make([]domain.TransactionRequest, 0, count)

	for i := 1; i <= count; i++ {
		txType := transactionTypes[g.rng.Intn(len(transactionTypes))]

		currency := "EUR"
		if g.rng.Intn(10) >= 9 {
			currency = currencies[g.rng.Intn(len(currencies))]
		}

		req := domain.TransactionRequest{
			TransactionID:    fmt.Sprintf("TXN_%06d", i),
			TransactionType:  txType,
			Amount:           g.realisticAmount(txType),
			Currency:         currency,
			IsDomestic:       g.rng.Intn(10) < 8,
			MerchantCategory: g.merchantCategory(txType),
			Channel:          channels[g.rng.Intn(len(channels))],
			IsRecurring:      g.rng.Intn(10) < 2,
			TransactionDate:  time.Now().UTC().AddDate(0, 0, -g.rng.Intn(30)),
			Client:           g.client(),
		}
		transactions = append(transactions, req)
	}

	return transactions
}

// Scenarios returns the fixed set of requests covering each shipped rule.
func (g *Generator) Scenarios() []domain.TransactionRequest {
	lowScore := 350
	highScore := 450

	return []domain.TransactionRequest{
		{
			TransactionID:   "SCENARIO_POS_SMALL",
			TransactionType: domain.TypePOS,
			Amount:          decimal.RequireFromString("50.00"),
			Currency:        "EUR",
			TransactionDate: time.Now().UTC(),
			Client:          domain.ClientInfo{ClientID: "SCENARIO_CLIENT_1", CreditScore: &lowScore, ClientSegment: domain.SegmentStandard},
		},
		{
			TransactionID:   "SCENARIO_POS_LARGE_DISCOUNT",
			TransactionType: domain.TypePOS,
			Amount:          decimal.RequireFromString("200.00"),
			Currency:        "EUR",
			TransactionDate: time.Now().UTC(),
			Client:          domain.ClientInfo{ClientID: "SCENARIO_CLIENT_2", CreditScore: &highScore, ClientSegment: domain.SegmentStandard},
		},
		{
			TransactionID:   "SCENARIO_ECOMMERCE_CAPPED",
			TransactionType: domain.TypeECommerce,
			Amount:          decimal.RequireFromString("10000.00"),
			Currency:        "EUR",
			TransactionDate: time.Now().UTC(),
			Client:          domain.ClientInfo{ClientID: "SCENARIO_CLIENT_3", CreditScore: &lowScore, ClientSegment: domain.SegmentStandard},
		},
		{
			TransactionID:   "SCENARIO_VIP",
			TransactionType: domain.TypeECommerce,
			Amount:          decimal.RequireFromString("500.00"),
			Currency:        "EUR",
			TransactionDate: time.Now().UTC(),
			Client:          domain.ClientInfo{ClientID: "SCENARIO_CLIENT_4", CreditScore: &lowScore, ClientSegment: domain.SegmentVIP},
		},
		{
			TransactionID:   "SCENARIO_NO_RULES",
			TransactionType: domain.TypeATM,
			Amount:          decimal.RequireFromString("100.00"),
			Currency:        "EUR",
			TransactionDate: time.Now().UTC(),
			Client:          domain.ClientInfo{ClientID: "SCENARIO_CLIENT_5", CreditScore: &lowScore, ClientSegment: domain.SegmentStandard},
		},
	}
}

// PerformanceBatch builds a ready-to-post batch of the given size.
func (g *Generator) PerformanceBatch(size int) *domain.BatchTransactionRequest {
	return &domain.BatchTransactionRequest{
		BatchID:      uuid.NewString(),
		Transactions: g.Transactions(size),
		RequestedAt:  time.Now().UTC(),
	}
}

func (g *Generator) realisticAmount(txType domain.TransactionType) decimal.Decimal {
	var base int
	switch txType {
	case domain.TypePOS:
		base = 5 + g.rng.Intn(495)
	case domain.TypeECommerce:
		base = 10 + g.rng.Intn(1990)
	case domain.TypeATM:
		base = 20 + g.rng.Intn(480)
	case domain.TypeTransfer:
		base = 50 + g.rng.Intn(9950)
	case domain.TypeInternational:
		base = 100 + g.rng.Intn(49900)
	default:
		base = 10 + g.rng.Intn(990)
	}

	cents := g.rng.Intn(100)
	return decimal.New(int64(base*100+cents), -2)
}

func (g *Generator) merchantCategory(txType domain.TransactionType) string {
	switch txType {
	case domain.TypePOS:
		categories := []string{"GROCERY", "RESTAURANT", "RETAIL", "GAS_STATION", "PHARMACY"}
		return categories[g.rng.Intn(len(categories))]
	case domain.TypeECommerce:
		categories := []string{"ONLINE_RETAIL", "DIGITAL_SERVICES", "SUBSCRIPTION", "MARKETPLACE"}
		return categories[g.rng.Intn(len(categories))]
	case domain.TypeATM:
		return "ATM_WITHDRAWAL"
	default:
		return "OTHER"
	}
}

func (g *Generator) client() domain.ClientInfo {
	score := 200 + g.rng.Intn(650)

	promotionCount := g.rng.Intn(3)
	activePromotions := make([]string, 0, promotionCount)
	for _, idx := range g.rng.Perm(len(promotions))[:promotionCount] {
		activePromotions = append(activePromotions, promotions[idx])
	}

	return domain.ClientInfo{
		ClientID:              fmt.Sprintf("CLIENT_%03d", 1+g.rng.Intn(500)),
		CreditScore:           &score,
		ClientSegment:         segments[g.rng.Intn(len(segments))],
		BusinessType:          businesses[g.rng.Intn(len(businesses))],
		RiskLevel:             riskLevels[g.rng.Intn(len(riskLevels))],
		HasActivePromotions:   len(activePromotions) > 0,
		ActivePromotions:      activePromotions,
		MonthlyVolume:         decimal.NewFromInt(int64(100 + g.rng.Intn(49900))),
		TransactionsThisMonth: 1 + g.rng.Intn(49),
		ClientSince:           time.Now().UTC().AddDate(0, 0, -(30 + g.rng.Intn(1795))),
	}
}
