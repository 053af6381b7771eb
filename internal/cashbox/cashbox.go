package cashbox

import (
	"context"

	"github.com/armax-ru/umka-online-gateway/internal/api"
	"github.com/armax-ru/umka-online-gateway/internal/config"
	"github.com/armax-ru/umka-online-gateway/internal/document"
	"github.com/armax-ru/umka-online-gateway/internal/mapping"
	"github.com/armax-ru/umka-online-gateway/internal/models"
	"github.com/armax-ru/umka-online-gateway/internal/registry"
)

// Cashbox is the public surface of the gateway: build, validate, register,
// resolve status, describe settings. One value per terminal.
type Cashbox struct {
	builder *document.Builder
	engine  *registry.Engine
	profile mapping.Profile
}

func New(builder *document.Builder, engine *registry.Engine, profile mapping.Profile) *Cashbox {
	return &Cashbox{
		builder: builder,
		engine:  engine,
		profile: profile,
	}
}

// BuildReceipt exposes the pure mapping step for callers that want the
// document without submitting it.
func (c *Cashbox) BuildReceipt(check models.Check) (api.Document, error) {
	return c.builder.BuildReceipt(check)
}

// Validate exposes the pre-submission checks.
func (c *Cashbox) Validate(doc api.Document) []document.Violation {
	return document.Validate(doc)
}

// RegisterCheck builds, validates and submits a till check. Validation
// violations become a Rejected outcome before any network call.
func (c *Cashbox) RegisterCheck(ctx context.Context, check models.Check) registry.Outcome {
	doc, err := c.builder.BuildReceipt(check)
	if err != nil {
		return registry.Rejectedf("document build failed: %v", err)
	}

	if violations := document.Validate(doc); len(violations) > 0 {
		return registry.Rejectedf("document invalid: %s", violations[0].Message)
	}

	return c.engine.Register(ctx, doc, registry.OperationForCheck(check.Type))
}

// RegisterCorrection builds and submits a corrective filing.
func (c *Cashbox) RegisterCorrection(ctx context.Context, correction models.Correction) registry.Outcome {
	doc, err := c.builder.BuildCorrection(correction)
	if err != nil {
		return registry.Rejectedf("document build failed: %v", err)
	}

	return c.engine.Register(ctx, doc, registry.OperationForCorrection(correction.Sign))
}

// CheckStatus resolves a previously accepted registration.
func (c *Cashbox) CheckStatus(ctx context.Context, externalUUID string) registry.Outcome {
	return c.engine.CheckStatus(ctx, externalUUID)
}

// SettingsSchema declares the configuration keys this terminal's profile
// recognizes.
func (c *Cashbox) SettingsSchema() []config.SchemaItem {
	return config.SettingsSchema(c.profile)
}
