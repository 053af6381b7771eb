package document

import (
	"fmt"
	"strings"

	"github.com/armax-ru/umka-online-gateway/internal/api"
	"github.com/armax-ru/umka-online-gateway/internal/config"
	"github.com/armax-ru/umka-online-gateway/internal/interfaces"
	"github.com/armax-ru/umka-online-gateway/internal/mapping"
	"github.com/armax-ru/umka-online-gateway/internal/models"
)

// Position names longer than this are truncated, per protocol limit.
const maxNameLength = 128

// Correction base document descriptions are capped separately.
const maxBaseNameLength = 255

// Builder maps domain checks onto protocol documents. It is a pure
// transformation over its inputs and the construction-time settings;
// no I/O happens here.
type Builder struct {
	profile  mapping.Profile
	settings config.Settings
	domain   string
	phones   interfaces.PhoneNormalizer
}

func NewBuilder(profile mapping.Profile, settings config.Settings, domain string, phones interfaces.PhoneNormalizer) *Builder {
	return &Builder{
		profile:  profile,
		settings: settings,
		domain:   domain,
		phones:   phones,
	}
}

// BuildReceipt converts a till check into the registration document.
func (b *Builder) BuildReceipt(check models.Check) (api.Document, error) {
	paymentMethod, err := b.profile.PaymentMethodCode(check.Type)
	if err != nil {
		return api.Document{}, err
	}

	receipt := &api.Receipt{
		Client:  b.buildClient(check.ClientEmail, check.ClientPhone),
		Company: b.buildCompany(),
		Total:   check.TotalSum,
	}

	for _, payment := range check.Payments {
		entry, err := b.buildPayment(payment)
		if err != nil {
			return api.Document{}, err
		}
		receipt.Payments = append(receipt.Payments, entry)
	}

	for _, item := range check.Items {
		position, err := b.buildPosition(paymentMethod, item)
		if err != nil {
			return api.Document{}, err
		}
		receipt.Items = append(receipt.Items, position)
	}

	return api.Document{
		Timestamp:  check.CreatedAt.Format(api.TimestampLayout),
		ExternalID: ExternalID(ExternalTypeCheck, b.domain, check.UniqueID),
		Service:    api.ServiceInfo{CallbackURL: b.settings.CallbackURL},
		Receipt:    receipt,
	}, nil
}

// BuildCorrection converts a corrective filing into its document. Only the
// current protocol revision accepts corrections.
func (b *Builder) BuildCorrection(correction models.Correction) (api.Document, error) {
	if !b.profile.SupportsCorrections {
		return api.Document{}, fmt.Errorf("profile %s does not support correction documents", b.profile.Name)
	}

	doc := &api.Correction{
		Company: b.buildCompany(),
		Info: api.CorrectionInfo{
			Type:       correction.Info.Type,
			BaseDate:   correction.Info.DocumentDate.Format(api.TimestampLayout),
			BaseNumber: correction.Info.DocumentNumber,
			BaseName:   truncate(correction.Info.Description, maxBaseNameLength),
		},
	}

	for _, payment := range correction.Payments {
		entry, err := b.buildPayment(payment)
		if err != nil {
			return api.Document{}, err
		}
		doc.Payments = append(doc.Payments, entry)
	}

	for _, vat := range correction.Vats {
		doc.Vats = append(doc.Vats, api.VatTotal{
			Type: b.resolveVat(vat.Vat),
			Sum:  vat.Sum,
		})
	}

	return api.Document{
		Timestamp:  correction.CreatedAt.Format(api.TimestampLayout),
		ExternalID: ExternalID(ExternalTypeCheck, b.domain, correction.UniqueID),
		Service:    api.ServiceInfo{CallbackURL: b.settings.CallbackURL},
		Correction: doc,
	}, nil
}

func (b *Builder) buildCompany() api.Company {
	return api.Company{
		Email:          b.settings.CompanyEmail,
		SNO:            b.settings.SNO,
		INN:            b.settings.INN,
		PaymentAddress: b.settings.PaymentAddress,
	}
}

func (b *Builder) buildClient(email, rawPhone string) api.Client {
	phone := b.normalizePhone(rawPhone)

	switch b.settings.ClientInfo {
	case config.ClientInfoPhone:
		return api.Client{Phone: &phone}
	case config.ClientInfoEmail:
		return api.Client{Email: &email}
	}

	if b.profile.EmitEmptyClientFields {
		return api.Client{Email: &email, Phone: &phone}
	}

	var client api.Client
	if email != "" {
		client.Email = &email
	}
	if phone != "" {
		client.Phone = &phone
	}
	return client
}

// normalizePhone reduces the raw value to international form. A phone that
// cannot be normalized is treated as absent, never as an error.
func (b *Builder) normalizePhone(raw string) string {
	if raw == "" {
		return ""
	}

	digits, ok := b.phones.Normalize(raw)
	if !ok || digits == "" {
		return ""
	}

	if !strings.HasPrefix(digits, "7") {
		digits = "7" + digits
	}
	return "+" + digits
}

func (b *Builder) buildPayment(payment models.CheckPayment) (api.Payment, error) {
	code, err := b.profile.PaymentTypeCode(payment.Type)
	if err != nil {
		return api.Payment{}, err
	}
	return api.Payment{Type: code, Sum: payment.Sum}, nil
}

func (b *Builder) buildPosition(paymentMethod string, item models.CheckItem) (api.Item, error) {
	object, err := b.profile.PaymentObjectCode(item.PaymentObject)
	if err != nil {
		return api.Item{}, err
	}

	position := api.Item{
		Name:          truncate(item.Name, maxNameLength),
		Price:         item.Price,
		Sum:           item.Sum,
		Quantity:      item.Quantity,
		PaymentMethod: paymentMethod,
		PaymentObject: object,
		Vat:           api.Vat{Type: b.profile.RemapVat(paymentMethod, b.resolveVat(item.Vat))},
	}

	if len(item.NomenclatureCode) > 0 {
		position.NomenclatureCode = NomenclatureCode(item.NomenclatureCode)
	}

	if b.profile.SupportsMeasure {
		position.Measure = b.resolveMeasure(item.MeasureCode)
	}

	return position, nil
}

// resolveVat looks up the domain VAT key in the configured table, falling
// back to the NOT_VAT entry for unknown keys.
func (b *Builder) resolveVat(key string) string {
	if vat, ok := b.settings.VAT[key]; ok && vat != "" {
		return vat
	}
	return b.settings.VAT["NOT_VAT"]
}

func (b *Builder) resolveMeasure(code string) string {
	if measure, ok := b.settings.Measure[code]; ok && measure != "" {
		return measure
	}
	return b.settings.Measure["DEFAULT"]
}

// NomenclatureCode renders raw marking bytes the way the service expects:
// two upper-case hex characters per byte, space separated.
func NomenclatureCode(code []byte) string {
	parts := make([]string, len(code))
	for i, octet := range code {
		parts[i] = fmt.Sprintf("%02X", octet)
	}
	return strings.Join(parts, " ")
}

// truncate cuts a string to at most limit runes without breaking a
// multi-byte sequence.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
