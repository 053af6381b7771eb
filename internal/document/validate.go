package document

import (
	"strconv"

	"github.com/armax-ru/umka-online-gateway/internal/api"
)

// Violation is one reason a document must not be submitted.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate runs the pre-submission checks on a built document. Callers run
// it before registering; a document with violations never goes over the
// network.
func Validate(doc api.Document) []Violation {
	var violations []Violation

	if doc.Receipt != nil {
		if isEmpty(doc.Receipt.Client.Email) && isEmpty(doc.Receipt.Client.Phone) {
			violations = append(violations, Violation{
				Field:   "receipt.client",
				Message: "client email and phone are both empty",
			})
		}

		// The builder always resolves a VAT code; this guards against a
		// misconfigured empty NOT_VAT entry.
		for i, item := range doc.Receipt.Items {
			if item.Vat.Type == "" {
				violations = append(violations, Violation{
					Field:   "receipt.items[" + strconv.Itoa(i) + "].vat",
					Message: "item has no VAT type",
				})
			}
		}
	}

	return violations
}

func isEmpty(s *string) bool {
	return s == nil || *s == ""
}
