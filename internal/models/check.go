package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Domain-side sale documents as the host commerce system hands them over.
// These are inputs to the document builder; the protocol shapes live in
// internal/api.

// CalculatedSign is the money-flow orientation of a document.
type CalculatedSign string

const (
	SignIncome      CalculatedSign = "income"
	SignConsumption CalculatedSign = "consumption"
)

// CheckType identifies the kind of sale document being registered.
type CheckType string

const (
	CheckTypeSell                 CheckType = "sell"
	CheckTypeSellReturn           CheckType = "sell_return"
	CheckTypeAdvance              CheckType = "advance"
	CheckTypeAdvanceReturn        CheckType = "advance_return"
	CheckTypePrepayment           CheckType = "prepayment"
	CheckTypePrepaymentReturn     CheckType = "prepayment_return"
	CheckTypeFullPrepayment       CheckType = "full_prepayment"
	CheckTypeFullPrepaymentReturn CheckType = "full_prepayment_return"
	CheckTypeCredit               CheckType = "credit"
	CheckTypeCreditReturn         CheckType = "credit_return"
	CheckTypeCreditPayment        CheckType = "credit_payment"
	CheckTypeCreditPaymentReturn  CheckType = "credit_payment_return"
)

// CalculatedSign derives the flow orientation from the check type. Return
// documents are consumption, everything else is income.
func (t CheckType) CalculatedSign() CalculatedSign {
	switch t {
	case CheckTypeSellReturn, CheckTypeAdvanceReturn, CheckTypePrepaymentReturn,
		CheckTypeFullPrepaymentReturn, CheckTypeCreditReturn, CheckTypeCreditPaymentReturn:
		return SignConsumption
	default:
		return SignIncome
	}
}

// PaymentType is the domain payment instrument.
type PaymentType string

const (
	PaymentCash     PaymentType = "cash"
	PaymentCashless PaymentType = "cashless"
	PaymentAdvance  PaymentType = "advance"
	PaymentCredit   PaymentType = "credit"
)

// PaymentObject is the domain category of a sold position.
type PaymentObject string

const (
	ObjectCommodity            PaymentObject = "commodity"
	ObjectService              PaymentObject = "service"
	ObjectJob                  PaymentObject = "job"
	ObjectExcise               PaymentObject = "excise"
	ObjectPayment              PaymentObject = "payment"
	ObjectGamblingBet          PaymentObject = "gambling_bet"
	ObjectGamblingPrize        PaymentObject = "gambling_prize"
	ObjectLottery              PaymentObject = "lottery"
	ObjectLotteryPrize         PaymentObject = "lottery_prize"
	ObjectIntellectualActivity PaymentObject = "intellectual_activity"
	ObjectAgentCommission      PaymentObject = "agent_commission"
	ObjectComposite            PaymentObject = "composite"
	ObjectAnother              PaymentObject = "another"
	ObjectPropertyRight        PaymentObject = "property_right"
	ObjectNonOperatingGain     PaymentObject = "non_operating_gain"
	ObjectSalesTax             PaymentObject = "sales_tax"
	ObjectResortFee            PaymentObject = "resort_fee"
	ObjectDeposit              PaymentObject = "deposit"
	ObjectExpense              PaymentObject = "expense"
	ObjectMarkedCommodity      PaymentObject = "marked_commodity"
	ObjectMarkedExcise         PaymentObject = "marked_excise"
)

// Check is a till receipt or refund handed over for registration.
type Check struct {
	UniqueID    string          `json:"unique_id"`
	Type        CheckType       `json:"type"`
	CreatedAt   time.Time       `json:"created_at"`
	ClientEmail string          `json:"client_email,omitempty"`
	ClientPhone string          `json:"client_phone,omitempty"`
	TotalSum    decimal.Decimal `json:"total_sum"`
	Items       []CheckItem     `json:"items"`
	Payments    []CheckPayment  `json:"payments"`
}

type CheckItem struct {
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	Sum              decimal.Decimal `json:"sum"`
	Quantity         decimal.Decimal `json:"quantity"`
	Vat              string          `json:"vat"`
	PaymentObject    PaymentObject   `json:"payment_object"`
	NomenclatureCode []byte          `json:"nomenclature_code,omitempty"`
	MeasureCode      string          `json:"measure_code,omitempty"`
}

type CheckPayment struct {
	Type PaymentType     `json:"type"`
	Sum  decimal.Decimal `json:"sum"`
}

// Correction is a corrective filing for a previously mis-registered sale.
type Correction struct {
	UniqueID  string          `json:"unique_id"`
	CreatedAt time.Time       `json:"created_at"`
	Sign      CalculatedSign  `json:"sign"`
	Info      CorrectionInfo  `json:"correction_info"`
	Payments  []CheckPayment  `json:"payments"`
	Vats      []CorrectionVat `json:"vats"`
}

type CorrectionInfo struct {
	Type           string    `json:"type"`
	DocumentDate   time.Time `json:"document_date"`
	DocumentNumber string    `json:"document_number"`
	Description    string    `json:"description"`
}

type CorrectionVat struct {
	Vat string          `json:"vat"`
	Sum decimal.Decimal `json:"sum"`
}
