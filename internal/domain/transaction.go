package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypePOS           TransactionType = "POS"
	TypeECommerce     TransactionType = "E_COMMERCE"
	TypeATM           TransactionType = "ATM"
	TypeTransfer      TransactionType = "TRANSFER"
	TypeInternational TransactionType = "INTERNATIONAL"
)

type ClientSegment string

const (
	SegmentStandard ClientSegment = "STANDARD"
	SegmentPremium  ClientSegment = "PREMIUM"
	SegmentVIP      ClientSegment = "VIP"
)

type BusinessType string

const (
	BusinessIndividual BusinessType = "INDIVIDUAL"
	BusinessCompany    BusinessType = "BUSINESS"
	BusinessCorporate  BusinessType = "CORPORATE"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

type TransactionRequest struct {
	TransactionID    string                 `json:"transaction_id"`
	TransactionType  TransactionType        `json:"transaction_type"`
	Amount           decimal.Decimal        `json:"amount"`
	Currency         string                 `json:"currency"`
	IsDomestic       bool                   `json:"is_domestic"`
	MerchantCategory string                 `json:"merchant_category,omitempty"`
	Channel          string                 `json:"channel,omitempty"`
	IsRecurring      bool                   `json:"is_recurring"`
	TransactionDate  time.Time              `json:"transaction_date"`
	Client           ClientInfo             `json:"client"`
	Attributes       map[string]interface{} `json:"attributes,omitempty"`
}

type ClientInfo struct {
	ClientID              string          `json:"client_id"`
	CreditScore           *int            `json:"credit_score,omitempty"`
	ClientSegment         ClientSegment   `json:"client_segment"`
	BusinessType          BusinessType    `json:"business_type"`
	RiskLevel             RiskLevel       `json:"risk_level"`
	HasActivePromotions   bool            `json:"has_active_promotions"`
	ActivePromotions      []string        `json:"active_promotions,omitempty"`
	MonthlyVolume         decimal.Decimal `json:"monthly_volume"`
	TransactionsThisMonth int             `json:"transactions_this_month"`
	ClientSince           time.Time       `json:"client_since"`
}

type BatchTransactionRequest struct {
	BatchID      string               `json:"batch_id"`
	Transactions []TransactionRequest `json:"transactions"`
	RequestedAt  time.Time            `json:"requested_at"`
}

func NewTransactionRequest(id string, txType TransactionType, amount decimal.Decimal, currency string) *TransactionRequest {
	return &TransactionRequest{
		TransactionID:   id,
		TransactionType: txType,
		Amount:          amount,
		Currency:        currency,
		IsDomestic:      true,
		TransactionDate: time.Now().UTC(),
		Client: ClientInfo{
			ClientSegment: SegmentStandard,
			BusinessType:  BusinessIndividual,
			RiskLevel:     RiskMedium,
		},
	}
}

func (r *TransactionRequest) WithClient(client ClientInfo) *TransactionRequest {
	r.Client = client
	return r
}

func (r *TransactionRequest) WithCreditScore(score int) *TransactionRequest {
	r.Client.CreditScore = &score
	return r
}

func (r *TransactionRequest) AddAttribute(key string, value interface{}) {
	if r.Attributes == nil {
		r.Attributes = make(map[string]interface{})
	}
	r.Attributes[key] = value
}

func NewBatchRequest(transactions []TransactionRequest) *BatchTransactionRequest {
	return &BatchTransactionRequest{
		BatchID:      uuid.NewString(),
		Transactions: transactions,
		RequestedAt:  time.Now().UTC(),
	}
}
