package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/armax-ru/umka-online-gateway/internal/api"
	"github.com/armax-ru/umka-online-gateway/internal/mapping"
)

// ClientInfoMode selects which buyer contacts go into a receipt.
type ClientInfoMode string

const (
	ClientInfoBoth  ClientInfoMode = "NONE" // both contacts, when present
	ClientInfoPhone ClientInfoMode = "PHONE"
	ClientInfoEmail ClientInfoMode = "EMAIL"
)

type Config struct {
	Server struct {
		Port    int  `yaml:"port"`
		Verbose bool `yaml:"verbose"`
	} `yaml:"server"`

	StandaloneMode bool `yaml:"standalone_mode"`

	Gateway struct {
		BaseURL        string `yaml:"base_url"`
		GroupCode      string `yaml:"group_code"`
		CallbackURL    string `yaml:"callback_url"`
		Profile        string `yaml:"profile"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"gateway"`

	Auth struct {
		Login string `yaml:"login"`
		Pass  string `yaml:"pass"`
	} `yaml:"auth"`

	Company struct {
		Email          string `yaml:"email"`
		INN            string `yaml:"inn"`
		PaymentAddress string `yaml:"payment_address"`
		SNO            string `yaml:"sno"`
	} `yaml:"company"`

	Client struct {
		Info string `yaml:"info"`
	} `yaml:"client"`

	// VAT maps domain VAT keys (rate ids plus NOT_VAT) to protocol codes.
	VAT map[string]string `yaml:"vat"`

	// Measure maps domain unit-of-measure codes to protocol values.
	Measure map[string]string `yaml:"measure"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// Timeout returns the transport timeout, defaulting to 15 seconds.
func (c *Config) Timeout() time.Duration {
	if c.Gateway.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Gateway.TimeoutSeconds) * time.Second
}

// Settings is the explicit configuration value handed to the document
// builder; nothing reads ambient state at build time.
type Settings struct {
	CompanyEmail   string
	INN            string
	PaymentAddress string
	SNO            string
	CallbackURL    string
	ClientInfo     ClientInfoMode

	VAT     map[string]string
	Measure map[string]string
}

// Settings materializes the builder settings from the loaded file,
// filling in the NOT_VAT fallback when the host left it out.
func (c *Config) Settings() Settings {
	vat := make(map[string]string, len(c.VAT)+1)
	for k, v := range c.VAT {
		vat[k] = v
	}
	if _, ok := vat["NOT_VAT"]; !ok {
		vat["NOT_VAT"] = api.VatNone
	}

	mode := ClientInfoBoth
	switch ClientInfoMode(c.Client.Info) {
	case ClientInfoPhone:
		mode = ClientInfoPhone
	case ClientInfoEmail:
		mode = ClientInfoEmail
	}

	return Settings{
		CompanyEmail:   c.Company.Email,
		INN:            c.Company.INN,
		PaymentAddress: c.Company.PaymentAddress,
		SNO:            c.Company.SNO,
		CallbackURL:    c.Gateway.CallbackURL,
		ClientInfo:     mode,
		VAT:            vat,
		Measure:        c.Measure,
	}
}

// Validate reports missing required settings before any network call.
func (c *Config) Validate() error {
	switch {
	case c.Gateway.GroupCode == "":
		return fmt.Errorf("configuration: gateway.group_code is required")
	case c.Auth.Login == "" || c.Auth.Pass == "":
		return fmt.Errorf("configuration: auth.login and auth.pass are required")
	case c.Company.INN == "":
		return fmt.Errorf("configuration: company.inn is required")
	case c.Company.PaymentAddress == "":
		return fmt.Errorf("configuration: company.payment_address is required")
	case c.Company.SNO == "":
		return fmt.Errorf("configuration: company.sno is required")
	}
	if _, ok := mapping.ByName(c.Gateway.Profile); !ok {
		return fmt.Errorf("configuration: unknown gateway.profile %q", c.Gateway.Profile)
	}
	return nil
}
