package config

import (
	"fmt"
	"sort"

	"github.com/armax-ru/umka-online-gateway/internal/mapping"
)

// SchemaItem declares one recognized configuration key with its type and
// default, so the host admin surface can render the settings form without
// knowing the protocol.
type SchemaItem struct {
	Section  string   `json:"section"`
	Key      string   `json:"key"`
	Type     string   `json:"type"`
	Label    string   `json:"label"`
	Default  string   `json:"default,omitempty"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

// SettingsSchema enumerates the settings the gateway understands under the
// given protocol profile. VAT entries cover the profile's known rates plus
// the NOT_VAT fallback; measure entries appear only when the profile
// supports them.
func SettingsSchema(profile mapping.Profile) []SchemaItem {
	schema := []SchemaItem{
		{Section: "AUTH", Key: "LOGIN", Type: "STRING", Label: "Service login", Required: true},
		{Section: "AUTH", Key: "PASS", Type: "STRING", Label: "Service password", Required: true},
		{Section: "SERVICE", Key: "EMAIL", Type: "STRING", Label: "Company e-mail"},
		{Section: "SERVICE", Key: "INN", Type: "STRING", Label: "Company tax number", Required: true},
		{Section: "SERVICE", Key: "P_ADDRESS", Type: "STRING", Label: "Payment address", Required: true},
		{
			Section: "TAX", Key: "SNO", Type: "ENUM", Label: "Tax scheme",
			Default:  "osn",
			Options:  []string{"osn", "usn_income", "usn_income_outcome", "envd", "esn", "patent"},
			Required: true,
		},
		{
			Section: "CLIENT", Key: "INFO", Type: "ENUM", Label: "Client contacts in receipt",
			Default: string(ClientInfoBoth),
			Options: []string{string(ClientInfoBoth), string(ClientInfoPhone), string(ClientInfoEmail)},
		},
		{Section: "VAT", Key: "NOT_VAT", Type: "STRING", Label: "VAT-free code", Default: "none", Required: true},
	}

	rates := make([]int, 0, 8)
	for rate := 0; rate <= 20; rate++ {
		if _, ok := profile.DefaultVatCode(rate); ok {
			rates = append(rates, rate)
		}
	}
	sort.Ints(rates)
	for _, rate := range rates {
		code, _ := profile.DefaultVatCode(rate)
		schema = append(schema, SchemaItem{
			Section: "VAT",
			Key:     fmt.Sprintf("%d", rate),
			Type:    "STRING",
			Label:   fmt.Sprintf("VAT %d%%", rate),
			Default: code,
		})
	}

	if profile.SupportsMeasure {
		schema = append(schema, SchemaItem{
			Section: "MEASURE", Key: "DEFAULT", Type: "STRING",
			Label: "Default measure code", Default: "0",
		})
	}

	return schema
}
