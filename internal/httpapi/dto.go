package httpapi

import (
	"time"

	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/samber/lo"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type RecordResponse struct {
	OrderID      int64   `json:"id"`
	ItemID       string  `json:"item_id"`
	First        bool    `json:"first"`
	PurchaseKey  string  `json:"purchase_key"`
	Date         string  `json:"date"`
	SubmissionID *string `json:"submission_id"`
	Net          string  `json:"net"`
	Tax          string  `json:"tax"`
	VatRate      string  `json:"vat_rate"`
	VatType      string  `json:"vat_type"`
	CountryCode  string  `json:"country_code"`
	CurrencyCode string  `json:"currency_code"`
}

type RecordsResponse struct {
	Status  string           `json:"status"`
	Records []RecordResponse `json:"records"`
	Skipped []SkippedOrder   `json:"skipped,omitempty"`
}

type SkippedOrder struct {
	OrderID int64  `json:"id"`
	Reason  string `json:"reason"`
}

type ErrorResponse struct {
	Status    string   `json:"status"`
	Messages  []string `json:"messages"`
	FailedIDs []int64  `json:"failed_ids,omitempty"`
}

type LookupRequest struct {
	OrderIDs []int64 `json:"order_ids"`
}

type MarkRequest struct {
	SubmissionID  string  `json:"submission_id"`
	CorrelationID string  `json:"correlation_id"`
	OrderIDs      []int64 `json:"order_ids"`
}

type UnmarkRequest struct {
	OrderIDs []int64 `json:"order_ids"`
}

type SourceResponse struct {
	Source    string            `json:"source"`
	Name      string            `json:"name"`
	RateTypes map[string]string `json:"rate_types"`
}

func mapRecordToResponse(r domain.ReportingRecord) RecordResponse {
	return RecordResponse{
		OrderID:      r.OrderID,
		ItemID:       r.ItemID.String(),
		First:        r.First,
		PurchaseKey:  r.PurchaseKey,
		Date:         r.Date.UTC().Format(time.RFC3339),
		SubmissionID: r.SubmissionID,
		Net:          r.Net.StringFixed(2),
		Tax:          r.Tax.StringFixed(2),
		VatRate:      r.VatRate.StringFixed(3),
		VatType:      string(r.VatType),
		CountryCode:  r.CountryCode,
		CurrencyCode: r.Currency.String(),
	}
}

func mapRecordsToResponse(records []domain.ReportingRecord) []RecordResponse {
	// never null in JSON
	return append([]RecordResponse{}, lo.Map(records, func(r domain.ReportingRecord, _ int) RecordResponse {
		return mapRecordToResponse(r)
	})...)
}

func mapSkippedToResponse(skipped []domain.SkippedOrder) []SkippedOrder {
	return lo.Map(skipped, func(s domain.SkippedOrder, _ int) SkippedOrder {
		return SkippedOrder{OrderID: s.OrderID, Reason: s.Reason}
	})
}
