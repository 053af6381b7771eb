package document

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armax-ru/umka-online-gateway/internal/api"
	"github.com/armax-ru/umka-online-gateway/internal/config"
	"github.com/armax-ru/umka-online-gateway/internal/mapping"
	"github.com/armax-ru/umka-online-gateway/internal/models"
	"github.com/armax-ru/umka-online-gateway/internal/services"
)

func testSettings() config.Settings {
	return config.Settings{
		CompanyEmail:   "shop@example.ru",
		INN:            "5902034504",
		PaymentAddress: "https://shop.example.ru",
		SNO:            "osn",
		CallbackURL:    "https://shop.example.ru/fiscal/callback",
		ClientInfo:     config.ClientInfoBoth,
		VAT: map[string]string{
			"NOT_VAT": api.VatNone,
			"10":      api.Vat10,
			"20":      api.Vat20,
		},
		Measure: map[string]string{"DEFAULT": "0", "KGM": "10"},
	}
}

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	return NewBuilder(mapping.Current(), testSettings(), "shop.example.ru", services.DigitsNormalizer{})
}

func breadCheck() models.Check {
	return models.Check{
		UniqueID:    "42",
		Type:        models.CheckTypeSell,
		CreatedAt:   time.Date(2026, 8, 21, 14, 30, 5, 0, time.Local),
		ClientEmail: "buyer@example.ru",
		TotalSum:    decimal.RequireFromString("150.00"),
		Items: []models.CheckItem{{
			Name:          "Bread",
			Price:         decimal.RequireFromString("75.00"),
			Quantity:      decimal.NewFromInt(2),
			Sum:           decimal.RequireFromString("150.00"),
			Vat:           "NOT_VAT",
			PaymentObject: models.ObjectCommodity,
		}},
		Payments: []models.CheckPayment{{
			Type: models.PaymentCash,
			Sum:  decimal.RequireFromString("150.00"),
		}},
	}
}

func TestBuildReceipt(t *testing.T) {
	builder := newTestBuilder(t)

	doc, err := builder.BuildReceipt(breadCheck())
	require.NoError(t, err)

	assert.Equal(t, "21.08.2026 14:30:05", doc.Timestamp)
	assert.Equal(t, "check-shop-example-ru-42", doc.ExternalID)
	assert.Equal(t, "https://shop.example.ru/fiscal/callback", doc.Service.CallbackURL)

	require.NotNil(t, doc.Receipt)
	receipt := doc.Receipt
	assert.Equal(t, "5902034504", receipt.Company.INN)
	assert.Equal(t, "osn", receipt.Company.SNO)
	assert.True(t, receipt.Total.Equal(decimal.RequireFromString("150.00")))

	require.Len(t, receipt.Payments, 1)
	assert.Equal(t, 0, receipt.Payments[0].Type) // cash in the current revision

	require.Len(t, receipt.Items, 1)
	item := receipt.Items[0]
	assert.Equal(t, "Bread", item.Name)
	assert.Equal(t, api.PaymentMethodFullPayment, item.PaymentMethod)
	assert.Equal(t, "commodity", item.PaymentObject)
	assert.Equal(t, api.VatNone, item.Vat.Type)

	assert.Empty(t, Validate(doc))
}

func TestBuildReceiptVatResolution(t *testing.T) {
	builder := newTestBuilder(t)

	check := breadCheck()
	check.Items[0].Vat = "20"
	doc, err := builder.BuildReceipt(check)
	require.NoError(t, err)
	assert.Equal(t, api.Vat20, doc.Receipt.Items[0].Vat.Type)

	// Unknown VAT keys fall back to the configured NOT_VAT entry.
	check.Items[0].Vat = "13"
	doc, err = builder.BuildReceipt(check)
	require.NoError(t, err)
	assert.Equal(t, api.VatNone, doc.Receipt.Items[0].Vat.Type)

	// Advance documents carry the calculated-rate variant.
	check.Items[0].Vat = "20"
	check.Type = models.CheckTypeAdvance
	doc, err = builder.BuildReceipt(check)
	require.NoError(t, err)
	assert.Equal(t, api.CalcVat20, doc.Receipt.Items[0].Vat.Type)
	assert.Equal(t, api.PaymentMethodAdvance, doc.Receipt.Items[0].PaymentMethod)
}

func TestBuildReceiptNameTruncation(t *testing.T) {
	builder := newTestBuilder(t)

	check := breadCheck()
	check.Items[0].Name = strings.Repeat("х", 200) // cyrillic, multi-byte
	doc, err := builder.BuildReceipt(check)
	require.NoError(t, err)

	name := doc.Receipt.Items[0].Name
	assert.Equal(t, 128, len([]rune(name)))
	assert.True(t, strings.HasPrefix(check.Items[0].Name, name))
}

func TestBuildReceiptNomenclatureCode(t *testing.T) {
	builder := newTestBuilder(t)

	check := breadCheck()
	check.Items[0].NomenclatureCode = []byte{0x01, 0xAB}
	doc, err := builder.BuildReceipt(check)
	require.NoError(t, err)

	assert.Equal(t, "01 AB", doc.Receipt.Items[0].NomenclatureCode)
}

func TestBuildReceiptClientInfo(t *testing.T) {
	t.Run("both when present, absent fields omitted", func(t *testing.T) {
		builder := newTestBuilder(t)

		check := breadCheck()
		check.ClientEmail = ""
		check.ClientPhone = "8 (912) 345-67-89"
		doc, err := builder.BuildReceipt(check)
		require.NoError(t, err)

		assert.Nil(t, doc.Receipt.Client.Email)
		require.NotNil(t, doc.Receipt.Client.Phone)
		assert.Equal(t, "+79123456789", *doc.Receipt.Client.Phone)
	})

	t.Run("phone-only mode", func(t *testing.T) {
		settings := testSettings()
		settings.ClientInfo = config.ClientInfoPhone
		builder := NewBuilder(mapping.Current(), settings, "shop.example.ru", services.DigitsNormalizer{})

		doc, err := builder.BuildReceipt(breadCheck())
		require.NoError(t, err)

		assert.Nil(t, doc.Receipt.Client.Email)
		require.NotNil(t, doc.Receipt.Client.Phone)
		assert.Empty(t, *doc.Receipt.Client.Phone)
	})

	t.Run("legacy revision emits empty strings", func(t *testing.T) {
		builder := NewBuilder(mapping.Legacy(), testSettings(), "shop.example.ru", services.DigitsNormalizer{})

		check := breadCheck()
		check.ClientEmail = ""
		doc, err := builder.BuildReceipt(check)
		require.NoError(t, err)

		require.NotNil(t, doc.Receipt.Client.Email)
		assert.Empty(t, *doc.Receipt.Client.Email)
		require.NotNil(t, doc.Receipt.Client.Phone)
		assert.Empty(t, *doc.Receipt.Client.Phone)
	})

	t.Run("unreadable phone treated as absent", func(t *testing.T) {
		builder := newTestBuilder(t)

		check := breadCheck()
		check.ClientPhone = "ask reception"
		doc, err := builder.BuildReceipt(check)
		require.NoError(t, err)

		assert.Nil(t, doc.Receipt.Client.Phone)
	})

	t.Run("country code prefixed to bare local number", func(t *testing.T) {
		builder := newTestBuilder(t)

		check := breadCheck()
		check.ClientPhone = "9123456789"
		doc, err := builder.BuildReceipt(check)
		require.NoError(t, err)

		require.NotNil(t, doc.Receipt.Client.Phone)
		assert.Equal(t, "+79123456789", *doc.Receipt.Client.Phone)
	})
}

func TestBuildCorrection(t *testing.T) {
	builder := newTestBuilder(t)

	correction := models.Correction{
		UniqueID:  "corr-7",
		CreatedAt: time.Date(2026, 8, 22, 10, 0, 0, 0, time.Local),
		Sign:      models.SignIncome,
		Info: models.CorrectionInfo{
			Type:           "self",
			DocumentDate:   time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local),
			DocumentNumber: "77",
			Description:    strings.Repeat("a", 300),
		},
		Payments: []models.CheckPayment{{
			Type: models.PaymentCashless,
			Sum:  decimal.RequireFromString("99.90"),
		}},
		Vats: []models.CorrectionVat{{
			Vat: "20",
			Sum: decimal.RequireFromString("16.65"),
		}},
	}

	doc, err := builder.BuildCorrection(correction)
	require.NoError(t, err)

	require.NotNil(t, doc.Correction)
	assert.Nil(t, doc.Receipt)
	assert.Equal(t, "self", doc.Correction.Info.Type)
	assert.Equal(t, "20.08.2026 00:00:00", doc.Correction.Info.BaseDate)
	assert.Len(t, doc.Correction.Info.BaseName, 255)

	require.Len(t, doc.Correction.Vats, 1)
	assert.Equal(t, api.Vat20, doc.Correction.Vats[0].Type)

	require.Len(t, doc.Correction.Payments, 1)
	assert.Equal(t, 1, doc.Correction.Payments[0].Type)
}

func TestBuildCorrectionUnsupportedOnLegacy(t *testing.T) {
	builder := NewBuilder(mapping.Legacy(), testSettings(), "shop.example.ru", services.DigitsNormalizer{})

	_, err := builder.BuildCorrection(models.Correction{UniqueID: "corr-1"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	builder := newTestBuilder(t)

	check := breadCheck()
	check.ClientEmail = ""
	check.ClientPhone = ""
	doc, err := builder.BuildReceipt(check)
	require.NoError(t, err)

	violations := Validate(doc)
	require.Len(t, violations, 1)
	assert.Equal(t, "receipt.client", violations[0].Field)

	// A misconfigured empty NOT_VAT entry is caught defensively.
	doc.Receipt.Items[0].Vat.Type = ""
	violations = Validate(doc)
	assert.Len(t, violations, 2)
}
