package registry

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/armax-ru/umka-online-gateway/internal/api"
	"github.com/armax-ru/umka-online-gateway/internal/interfaces"
	"github.com/armax-ru/umka-online-gateway/internal/models"
	"github.com/armax-ru/umka-online-gateway/internal/session"
)

// OperationForCheck derives the registry operation from a check's
// calculated sign: income sells, consumption refunds.
func OperationForCheck(t models.CheckType) api.Operation {
	if t.CalculatedSign() == models.SignConsumption {
		return api.OperationSellRefund
	}
	return api.OperationSell
}

// OperationForCorrection maps a correction's sign the same way, except
// income corrections use the dedicated correction tag.
func OperationForCorrection(sign models.CalculatedSign) api.Operation {
	if sign == models.SignConsumption {
		return api.OperationSellRefund
	}
	return api.OperationSellCorrection
}

// Engine drives the submit and poll flows against the registration
// service. It is stateless between calls; the token cache lives in the
// session.
type Engine struct {
	transport interfaces.Transport
	session   *session.Session
	baseURL   string
	groupCode string
	logger    *slog.Logger
}

func NewEngine(transport interfaces.Transport, sess *session.Session, baseURL, groupCode string, logger *slog.Logger) *Engine {
	return &Engine{
		transport: transport,
		session:   sess,
		baseURL:   strings.TrimRight(baseURL, "/"),
		groupCode: groupCode,
		logger:    logger,
	}
}

// Register submits a built document under the given operation tag. The
// document is sent as-is; one 401 triggers a token refresh and a single
// resubmission of the same body, a second 401 is terminal.
func (e *Engine) Register(ctx context.Context, doc api.Document, op api.Operation) Outcome {
	token := e.session.Token()
	if token == "" {
		var err error
		if token, err = e.session.Refresh(ctx); err != nil {
			return Rejectedf("access token unavailable: %v", err)
		}
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return Rejectedf("document not encodable: %v", err)
	}

	status, respBody, err := e.transport.Do(ctx, http.MethodPost, e.registryURL(op, token), body)
	if err != nil {
		e.logger.Error("registration request failed", "operation", op, "external_id", doc.ExternalID, "error", err)
		return Rejectedf("registration request failed: %v", err)
	}

	if status == http.StatusUnauthorized {
		if token, err = e.session.Refresh(ctx); err != nil {
			return Rejectedf("access token unavailable: %v", err)
		}

		status, respBody, err = e.transport.Do(ctx, http.MethodPost, e.registryURL(op, token), body)
		if err != nil {
			e.logger.Error("registration retry failed", "operation", op, "external_id", doc.ExternalID, "error", err)
			return Rejectedf("registration request failed: %v", err)
		}
	}

	return e.interpretRegistration(status, respBody, doc.ExternalID)
}

func (e *Engine) interpretRegistration(status int, body []byte, externalID string) Outcome {
	var resp api.RegistrationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		e.logger.Error("registration response unreadable", "external_id", externalID, "status", status, "body", snippet(body))
		return Rejectedf("registration response unreadable: %v", err)
	}

	if status == http.StatusOK && resp.UUID != "" {
		return Accepted(resp.UUID)
	}

	if resp.Error != nil && resp.Error.Text != "" {
		e.logger.Error("registration rejected", "external_id", externalID, "status", status, "code", resp.Error.Code, "text", resp.Error.Text)
		return Rejected(resp.Error.Code, resp.Error.Text)
	}

	e.logger.Error("registration rejected without detail", "external_id", externalID, "status", status, "body", snippet(body))
	return Rejectedf("check registration error (status %d)", status)
}

// CheckStatus resolves a pending registration by its external uuid. A
// missing uuid on the caller's record short-circuits without touching the
// network.
func (e *Engine) CheckStatus(ctx context.Context, externalUUID string) Outcome {
	if externalUUID == "" {
		return Rejectedf("wrong uuid")
	}

	status, respBody, err := e.transport.Do(ctx, http.MethodGet, e.reportURL(externalUUID, e.session.Token()), nil)
	if err != nil {
		e.logger.Error("status request failed", "uuid", externalUUID, "error", err)
		return Rejectedf("status request failed: %v", err)
	}

	if status == http.StatusUnauthorized {
		token, err := e.session.Refresh(ctx)
		if err != nil {
			return Rejectedf("access token unavailable: %v", err)
		}

		status, respBody, err = e.transport.Do(ctx, http.MethodGet, e.reportURL(externalUUID, token), nil)
		if err != nil {
			e.logger.Error("status retry failed", "uuid", externalUUID, "error", err)
			return Rejectedf("status request failed: %v", err)
		}
	}

	var report api.ReportResponse
	if err := json.Unmarshal(respBody, &report); err != nil {
		e.logger.Error("status response unreadable", "uuid", externalUUID, "status", status, "body", snippet(respBody))
		return Rejectedf("status response unreadable: %v", err)
	}
	report.UUID = externalUUID

	return OutcomeFromReport(report)
}

// OutcomeFromReport interprets a settled (or still waiting) report. The
// callback handler feeds callback payloads through the same path.
func OutcomeFromReport(report api.ReportResponse) Outcome {
	if report.Status == api.StatusWait {
		return Pending(report.UUID)
	}

	if report.Error != nil && report.Error.Text != "" {
		outcome := Rejected(report.Error.Code, report.Error.Text)
		outcome.UUID = report.UUID
		return outcome
	}

	if report.Payload == nil {
		return Rejectedf("report for %s carries neither payload nor error", report.UUID)
	}

	receiptAt, err := time.ParseInLocation(api.TimestampLayout, report.Payload.ReceiptDatetime, time.Local)
	if err != nil {
		return Rejectedf("report for %s has unreadable receipt datetime %q", report.UUID, report.Payload.ReceiptDatetime)
	}

	return Fiscalized(report.UUID, FiscalAttributes{
		ECRRegistrationNumber:   report.Payload.ECRRegistrationNumber,
		FiscalDocumentNumber:    report.Payload.FiscalDocumentNumber,
		FiscalDocumentAttribute: report.Payload.FiscalDocumentAttribute,
		FiscalReceiptNumber:     report.Payload.FiscalReceiptNumber,
		FnNumber:                report.Payload.FnNumber,
		ShiftNumber:             report.Payload.ShiftNumber,
		Total:                   report.Payload.Total,
		ReceiptAt:               receiptAt,
	})
}

func (e *Engine) registryURL(op api.Operation, token string) string {
	return e.baseURL + "/" + e.groupCode + "/" + string(op) + "?token=" + token
}

func (e *Engine) reportURL(externalUUID, token string) string {
	return e.baseURL + "/" + e.groupCode + "/report/" + externalUUID + "?token=" + token
}

func snippet(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
