package mapping

import (
	"fmt"

	"github.com/armax-ru/umka-online-gateway/internal/api"
	"github.com/armax-ru/umka-online-gateway/internal/models"
)

// Profile bundles the code tables of one protocol revision. The registration
// service has changed its accepted code sets over time; everything
// revision-specific lives here so the builder and engine stay singular.
type Profile struct {
	Name string

	paymentTypes   map[models.PaymentType]int
	paymentMethods map[models.CheckType]string
	paymentObjects map[models.PaymentObject]string

	// vatToCalcVat substitutes calculated-rate VAT codes on advance and
	// prepayment documents.
	vatToCalcVat map[string]string

	// EmitEmptyClientFields reproduces the earlier revision, which sent
	// empty-string client contacts instead of omitting them.
	EmitEmptyClientFields bool

	// SupportsCorrections gates correction documents; the earlier revision
	// predates them.
	SupportsCorrections bool

	// SupportsMeasure gates unit-of-measure settings and item fields.
	SupportsMeasure bool

	// defaultVatByRate seeds the settings schema with protocol codes for
	// the host system's configured VAT rates.
	defaultVatByRate map[int]string
}

// PaymentTypeCode maps a domain payment instrument to its protocol code.
// An unknown instrument is a programming error, not a document property.
func (p Profile) PaymentTypeCode(t models.PaymentType) (int, error) {
	code, ok := p.paymentTypes[t]
	if !ok {
		return 0, fmt.Errorf("profile %s: no payment type code for %q", p.Name, t)
	}
	return code, nil
}

// PaymentMethodCode maps a check type to the payment_method item field.
func (p Profile) PaymentMethodCode(t models.CheckType) (string, error) {
	code, ok := p.paymentMethods[t]
	if !ok {
		return "", fmt.Errorf("profile %s: no payment method for check type %q", p.Name, t)
	}
	return code, nil
}

// PaymentObjectCode maps a position category to the payment_object field.
func (p Profile) PaymentObjectCode(o models.PaymentObject) (string, error) {
	code, ok := p.paymentObjects[o]
	if !ok {
		return "", fmt.Errorf("profile %s: no payment object code for %q", p.Name, o)
	}
	return code, nil
}

// RemapVat substitutes the calculated-rate VAT variant on documents whose
// payment method is an advance or prepayment; other methods keep the
// nominal code.
func (p Profile) RemapVat(paymentMethod, vat string) string {
	switch paymentMethod {
	case api.PaymentMethodAdvance, api.PaymentMethodPrepayment, api.PaymentMethodFullPrepayment:
		if calc, ok := p.vatToCalcVat[vat]; ok {
			return calc
		}
	}
	return vat
}

// DefaultVatCode returns the protocol VAT code conventionally tied to a
// percent rate, for seeding settings. ok is false for rates the revision
// does not know.
func (p Profile) DefaultVatCode(rate int) (string, bool) {
	code, ok := p.defaultVatByRate[rate]
	return code, ok
}
