package api

import "github.com/shopspring/decimal"

// Registration service API models.

// Document is the envelope posted to the registry endpoint. Exactly one of
// Receipt or Correction is set, depending on the operation.
type Document struct {
	Timestamp  string      `json:"timestamp"`
	ExternalID string      `json:"external_id"`
	Service    ServiceInfo `json:"service"`
	Receipt    *Receipt    `json:"receipt,omitempty"`
	Correction *Correction `json:"correction,omitempty"`
}

type ServiceInfo struct {
	CallbackURL string `json:"callback_url"`
}

type Receipt struct {
	Client   Client          `json:"client"`
	Company  Company         `json:"company"`
	Items    []Item          `json:"items"`
	Payments []Payment       `json:"payments"`
	Total    decimal.Decimal `json:"total"`
}

// Client carries buyer contacts. Fields are pointers so the builder can
// choose between omitting an absent contact and emitting an empty string,
// which differs between protocol revisions.
type Client struct {
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type Company struct {
	Email          string `json:"email,omitempty"`
	SNO            string `json:"sno"`
	INN            string `json:"inn"`
	PaymentAddress string `json:"payment_address"`
}

type Item struct {
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	Sum              decimal.Decimal `json:"sum"`
	Quantity         decimal.Decimal `json:"quantity"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentObject    string          `json:"payment_object"`
	Vat              Vat             `json:"vat"`
	NomenclatureCode string          `json:"nomenclature_code,omitempty"`
	Measure          string          `json:"measure,omitempty"`
}

type Vat struct {
	Type string `json:"type"`
}

type Payment struct {
	Type int             `json:"type"`
	Sum  decimal.Decimal `json:"sum"`
}

type Correction struct {
	Company  Company        `json:"company"`
	Info     CorrectionInfo `json:"correction_info"`
	Payments []Payment      `json:"payments"`
	Vats     []VatTotal     `json:"vats"`
}

type CorrectionInfo struct {
	Type       string `json:"type"`
	BaseDate   string `json:"base_date"`
	BaseNumber string `json:"base_number"`
	BaseName   string `json:"base_name"`
}

type VatTotal struct {
	Type string          `json:"type"`
	Sum  decimal.Decimal `json:"sum"`
}

// RegistrationResponse is the immediate reply to a registry POST.
type RegistrationResponse struct {
	UUID      string `json:"uuid"`
	Status    string `json:"status,omitempty"`
	Error     *Error `json:"error,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ReportResponse is returned by the report endpoint and, with the same
// shape, delivered to the callback URL once registration settles.
type ReportResponse struct {
	UUID      string         `json:"uuid"`
	Status    string         `json:"status"`
	Error     *Error         `json:"error,omitempty"`
	Payload   *FiscalPayload `json:"payload,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
	GroupCode string         `json:"group_code,omitempty"`
}

type Error struct {
	Code int    `json:"code"`
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

// FiscalPayload carries the fiscal attributes of a settled registration.
type FiscalPayload struct {
	Total                   decimal.Decimal `json:"total"`
	FiscalReceiptNumber     int             `json:"fiscal_receipt_number"`
	ShiftNumber             int             `json:"shift_number"`
	ReceiptDatetime         string          `json:"receipt_datetime"`
	FnNumber                string          `json:"fn_number"`
	ECRRegistrationNumber   string          `json:"ecr_registration_number"`
	FiscalDocumentNumber    int             `json:"fiscal_document_number"`
	FiscalDocumentAttribute int             `json:"fiscal_document_attribute"`
}

type TokenRequest struct {
	Login string `json:"login"`
	Pass  string `json:"pass"`
}

type TokenResponse struct {
	Token string `json:"token"`
	Code  int    `json:"code,omitempty"`
	Text  string `json:"text,omitempty"`
}
