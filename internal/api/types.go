package api

// Protocol constants shared by the registration and report flows.

// Operation selects the registry endpoint a document is posted to.
type Operation string

const (
	OperationSell           Operation = "sell"
	OperationSellRefund     Operation = "sell_refund"
	OperationSellCorrection Operation = "sell_correction"
)

// Registration report statuses returned by the service.
const (
	StatusWait = "wait"
	StatusDone = "done"
	StatusFail = "fail"
)

// VAT type codes accepted by the service.
const (
	VatNone = "none"
	Vat0    = "vat0"
	Vat5    = "vat5"
	Vat7    = "vat7"
	Vat10   = "vat10"
	Vat18   = "vat18"
	Vat20   = "vat20"

	// Calculated-rate variants used for advance and prepayment documents.
	CalcVat5  = "vat105"
	CalcVat7  = "vat107"
	CalcVat10 = "vat110"
	CalcVat20 = "vat120"
)

// Payment method codes (tag 1214).
const (
	PaymentMethodFullPayment    = "full_payment"
	PaymentMethodAdvance        = "advance"
	PaymentMethodPrepayment     = "prepayment"
	PaymentMethodFullPrepayment = "full_prepayment"
	PaymentMethodCredit         = "credit"
	PaymentMethodCreditPayment  = "credit_payment"
)

// Timestamp is the wall-clock format the service expects in documents
// and returns in report payloads.
const TimestampLayout = "02.01.2006 15:04:05"
