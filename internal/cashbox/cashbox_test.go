package cashbox

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armax-ru/umka-online-gateway/internal/api"
	"github.com/armax-ru/umka-online-gateway/internal/config"
	"github.com/armax-ru/umka-online-gateway/internal/document"
	"github.com/armax-ru/umka-online-gateway/internal/mapping"
	"github.com/armax-ru/umka-online-gateway/internal/models"
	"github.com/armax-ru/umka-online-gateway/internal/registry"
	"github.com/armax-ru/umka-online-gateway/internal/services"
	"github.com/armax-ru/umka-online-gateway/internal/services/mock"
	"github.com/armax-ru/umka-online-gateway/internal/session"
	"github.com/armax-ru/umka-online-gateway/internal/storage"
)

// newStandaloneCashbox wires the full stack against the in-process
// registrar, the same way standalone mode does.
func newStandaloneCashbox(t *testing.T) (*Cashbox, *storage.MemoryOptions) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	transport := mock.NewRegistrar(logger)
	store := storage.NewMemoryOptions()

	const baseURL = "https://fiscal.example.ru/v4"
	sess := session.New(transport, store, baseURL, "KKM-01", "login", "pass", logger)
	engine := registry.NewEngine(transport, sess, baseURL, "KKM-01", logger)

	profile := mapping.Current()
	settings := config.Settings{
		CompanyEmail:   "shop@example.ru",
		INN:            "5902034504",
		PaymentAddress: "https://shop.example.ru",
		SNO:            "osn",
		CallbackURL:    "https://shop.example.ru/fiscal/callback",
		ClientInfo:     config.ClientInfoBoth,
		VAT:            map[string]string{"NOT_VAT": api.VatNone, "20": api.Vat20},
		Measure:        map[string]string{"DEFAULT": "0"},
	}
	builder := document.NewBuilder(profile, settings, "shop.example.ru", services.DigitsNormalizer{})

	return New(builder, engine, profile), store
}

func sellCheck(id string) models.Check {
	return models.Check{
		UniqueID:    id,
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

func TestRegisterCheckWorkflow(t *testing.T) {
	cashbox, _ := newStandaloneCashbox(t)
	ctx := context.Background()

	outcome := cashbox.RegisterCheck(ctx, sellCheck("42"))
	require.Equal(t, registry.StateAccepted, outcome.State)
	require.NotEmpty(t, outcome.UUID)

	// The registrar settles after one waiting poll.
	polled := cashbox.CheckStatus(ctx, outcome.UUID)
	assert.Equal(t, registry.StatePending, polled.State)

	polled = cashbox.CheckStatus(ctx, outcome.UUID)
	require.Equal(t, registry.StateFiscalized, polled.State)
	require.NotNil(t, polled.Fiscal)
	assert.True(t, polled.Fiscal.Total.Equal(decimal.RequireFromString("150.00")))
	assert.NotEmpty(t, polled.Fiscal.FnNumber)
	assert.False(t, polled.Fiscal.ReceiptAt.IsZero())
}

func TestRegisterCheckRecoversFromStaleToken(t *testing.T) {
	cashbox, store := newStandaloneCashbox(t)

	// A token the registrar never issued forces the 401 refresh path.
	store.Set("umkaonline_access_token_kkm-01", "stale-token")

	outcome := cashbox.RegisterCheck(context.Background(), sellCheck("43"))
	assert.Equal(t, registry.StateAccepted, outcome.State)
	assert.NotEqual(t, "stale-token", store.Get("umkaonline_access_token_kkm-01"))
}

func TestRegisterCheckValidationShortCircuits(t *testing.T) {
	cashbox, store := newStandaloneCashbox(t)

	check := sellCheck("44")
	check.ClientEmail = ""
	check.ClientPhone = ""

	outcome := cashbox.RegisterCheck(context.Background(), check)
	assert.Equal(t, registry.StateRejected, outcome.State)
	assert.Equal(t, registry.SeverityError, outcome.Severity)

	// Nothing reached the service, not even a token request.
	assert.Empty(t, store.Get("umkaonline_access_token_kkm-01"))
}

func TestRegisterCorrectionWorkflow(t *testing.T) {
	cashbox, _ := newStandaloneCashbox(t)
	ctx := context.Background()

	correction := models.Correction{
		UniqueID:  "corr-7",
		CreatedAt: time.Date(2026, 8, 22, 10, 0, 0, 0, time.Local),
		Sign:      models.SignIncome,
		Info: models.CorrectionInfo{
			Type:           "self",
			DocumentDate:   time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local),
			DocumentNumber: "77",
			Description:    "understated total",
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

	outcome := cashbox.RegisterCorrection(ctx, correction)
	require.Equal(t, registry.StateAccepted, outcome.State)
	assert.NotEmpty(t, outcome.UUID)
}

func TestCheckStatusUnknownUUID(t *testing.T) {
	cashbox, _ := newStandaloneCashbox(t)

	outcome := cashbox.CheckStatus(context.Background(), "no-such-uuid")
	assert.Equal(t, registry.StateRejected, outcome.State)
	assert.Equal(t, "unknown external uuid", outcome.ErrorText)
}

func TestSettingsSchema(t *testing.T) {
	cashbox, _ := newStandaloneCashbox(t)

	schema := cashbox.SettingsSchema()
	require.NotEmpty(t, schema)

	keys := make(map[string]bool)
	for _, item := range schema {
		keys[item.Section+"."+item.Key] = true
	}
	assert.True(t, keys["AUTH.LOGIN"])
	assert.True(t, keys["TAX.SNO"])
	assert.True(t, keys["VAT.NOT_VAT"])
}
