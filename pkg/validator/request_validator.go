package validator

import (
	"errors"
	"fmt"
	"regexp"

	"fee_calculator/internal/domain"
)

var (
	ErrMissingTransactionID = errors.New("transaction id is required")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidCurrency      = errors.New("currency must be a 3-letter code")
	ErrUnknownType          = errors.New("unknown transaction type")
	ErrMissingClientID      = errors.New("client id is required")
	ErrEmptyBatch           = errors.New("batch must contain at least one transaction")
	ErrBatchTooLarge        = errors.New("batch size exceeds the allowed maximum")
)

type RequestValidator struct {
	currencyRegex *regexp.Regexp
	maxBatchSize  int
}

func NewRequestValidator(maxBatchSize int) *RequestValidator {
	return &RequestValidator{
		currencyRegex: regexp.MustCompile(`^[A-Z]{3}$`),
		maxBatchSize:  maxBatchSize,
	}
}

func (v *RequestValidator) ValidateRequest(req *domain.TransactionRequest) error {
	var errs []error

	if req.TransactionID == "" {
		errs = append(errs, ErrMissingTransactionID)
	}
	if !req.Amount.IsPositive() {
		errs = append(errs, ErrInvalidAmount)
	}
	if !v.currencyRegex.MatchString(req.Currency) {
		errs = append(errs, ErrInvalidCurrency)
	}
	if req.Client.ClientID == "" {
		errs = append(errs, ErrMissingClientID)
	}

	switch req.TransactionType {
	case domain.TypePOS, domain.TypeECommerce, domain.TypeATM, domain.TypeTransfer, domain.TypeInternational:
	default:
		errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownType, req.TransactionType))
	}

	return errors.Join(errs...)
}

func (v *RequestValidator) ValidateBatch(batch *domain.BatchTransactionRequest) error {
	if len(batch.Transactions) == 0 {
		return ErrEmptyBatch
	}
	if v.maxBatchSize > 0 && len(batch.Transactions) > v.maxBatchSize {
		return fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(batch.Transactions), v.maxBatchSize)
	}
	return nil
}
