package mock

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/armax-ru/umka-online-gateway/internal/api"
)

// Registrar is an in-process stand-in for the registration service, used in
// standalone mode and in workflow tests. It implements interfaces.Transport
// by routing on the request URL: tokens are issued freely, documents are
// accepted with a fresh uuid, and each report waits once before settling.
type Registrar struct {
	mu       sync.Mutex
	tokens   map[string]bool
	receipts map[string]*pendingReceipt
	logger   *slog.Logger
}

type pendingReceipt struct {
	doc      api.Document
	polls    int
	settleAt int // number of polls before the report settles
}

func NewRegistrar(logger *slog.Logger) *Registrar {
	return &Registrar{
		tokens:   make(map[string]bool),
		receipts: make(map[string]*pendingReceipt),
		logger:   logger,
	}
}

func (r *Registrar) Do(ctx context.Context, method, url string, body []byte) (int, []byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case strings.HasSuffix(url, "/getToken"):
		return r.issueToken()
	case strings.Contains(url, "/report/"):
		return r.report(url)
	default:
		return r.register(url, body)
	}
}

func (r *Registrar) issueToken() (int, []byte, error) {
	token := uuid.NewString()
	r.tokens[token] = true

	r.logger.Debug("mock registrar issued token")

	body, _ := json.Marshal(api.TokenResponse{Token: token})
	return http.StatusOK, body, nil
}

func (r *Registrar) register(url string, body []byte) (int, []byte, error) {
	if !r.authorized(url) {
		return http.StatusUnauthorized, []byte(`{}`), nil
	}

	var doc api.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		resp, _ := json.Marshal(api.RegistrationResponse{
			Status: api.StatusFail,
			Error:  &api.Error{Code: 1, Text: "document is not valid json"},
		})
		return http.StatusBadRequest, resp, nil
	}

	id := uuid.NewString()
	r.receipts[id] = &pendingReceipt{doc: doc, settleAt: 1}

	r.logger.Debug("mock registrar accepted document", "uuid", id, "external_id", doc.ExternalID)

	resp, _ := json.Marshal(api.RegistrationResponse{UUID: id, Status: api.StatusWait})
	return http.StatusOK, resp, nil
}

func (r *Registrar) report(url string) (int, []byte, error) {
	if !r.authorized(url) {
		return http.StatusUnauthorized, []byte(`{}`), nil
	}

	id := url[strings.Index(url, "/report/")+len("/report/"):]
	if q := strings.Index(id, "?"); q >= 0 {
		id = id[:q]
	}

	receipt, ok := r.receipts[id]
	if !ok {
		resp, _ := json.Marshal(api.ReportResponse{
			UUID:   id,
			Status: api.StatusFail,
			Error:  &api.Error{Code: 2, Text: "unknown external uuid"},
		})
		return http.StatusOK, resp, nil
	}

	receipt.polls++
	if receipt.polls <= receipt.settleAt {
		resp, _ := json.Marshal(api.ReportResponse{UUID: id, Status: api.StatusWait})
		return http.StatusOK, resp, nil
	}

	total := decimal.Zero
	if receipt.doc.Receipt != nil {
		total = receipt.doc.Receipt.Total
	}

	resp, _ := json.Marshal(api.ReportResponse{
		UUID:   id,
		Status: api.StatusDone,
		Payload: &api.FiscalPayload{
			Total:                   total,
			FiscalReceiptNumber:     receipt.polls,
			ShiftNumber:             1,
			ReceiptDatetime:         time.Now().Format(api.TimestampLayout),
			FnNumber:                "9999078900001234",
			ECRRegistrationNumber:   "0001234567012345",
			FiscalDocumentNumber:    100 + receipt.polls,
			FiscalDocumentAttribute: 3891955287,
		},
	})
	return http.StatusOK, resp, nil
}

func (r *Registrar) authorized(url string) bool {
	i := strings.Index(url, "token=")
	if i < 0 {
		return false
	}
	return r.tokens[url[i+len("token="):]]
}
