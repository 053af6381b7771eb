package registry

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/armax-ru/umka-online-gateway/internal/models"
)

// State is the terminal classification of one registration call.
type State string

const (
	StateAccepted   State = "accepted"
	StatePending    State = "pending"
	StateFiscalized State = "fiscalized"
	StateRejected   State = "rejected"
)

// Severity grades a remote rejection.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// SeverityFor classifies a remote error code. The service has never
// distinguished warnings in practice, so this is a single-branch default;
// future differentiation goes here and nowhere else.
func SeverityFor(code int) Severity {
	return SeverityError
}

// FiscalAttributes are the legally significant fields of a settled
// registration.
type FiscalAttributes struct {
	ECRRegistrationNumber   string                `json:"ecr_registration_number"`
	FiscalDocumentNumber    int                   `json:"fiscal_document_number"`
	FiscalDocumentAttribute int                   `json:"fiscal_document_attribute"`
	FiscalReceiptNumber     int                   `json:"fiscal_receipt_number"`
	FnNumber                string                `json:"fn_number"`
	ShiftNumber             int                   `json:"shift_number"`
	Total                   decimal.Decimal       `json:"total"`
	ReceiptAt               time.Time             `json:"receipt_at"`
	Sign                    models.CalculatedSign `json:"sign,omitempty"`
}

// Outcome is the single result type every registration and status call
// resolves to. Expected negative outcomes are Rejected values, not errors.
type Outcome struct {
	State     State             `json:"state"`
	UUID      string            `json:"uuid,omitempty"`
	Fiscal    *FiscalAttributes `json:"fiscal,omitempty"`
	ErrorCode int               `json:"error_code,omitempty"`
	ErrorText string            `json:"error_text,omitempty"`
	Severity  Severity          `json:"severity,omitempty"`
}

func Accepted(uuid string) Outcome {
	return Outcome{State: StateAccepted, UUID: uuid}
}

func Pending(uuid string) Outcome {
	return Outcome{State: StatePending, UUID: uuid}
}

func Fiscalized(uuid string, fiscal FiscalAttributes) Outcome {
	return Outcome{State: StateFiscalized, UUID: uuid, Fiscal: &fiscal}
}

func Rejected(code int, text string) Outcome {
	return Outcome{
		State:     StateRejected,
		ErrorCode: code,
		ErrorText: text,
		Severity:  SeverityFor(code),
	}
}

func Rejectedf(format string, args ...interface{}) Outcome {
	return Outcome{
		State:     StateRejected,
		ErrorText: fmt.Sprintf(format, args...),
		Severity:  SeverityError,
	}
}
