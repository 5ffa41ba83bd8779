package sandbox

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docpay-cli/internal/logger"
)

// Record kinds used in the store.
const (
	kindDocument       = "document"
	kindExtractions    = "extractions"
	kindLayout         = "layout"
	kindProvider       = "provider"
	kindPaymentRequest = "payment_request"
	kindPayment        = "payment"
	kindErrorReport    = "error_report"
)

// Config configures the sandbox backend.
type Config struct {
	// BaseURL prefixes every resource location.
	BaseURL string

	// ProcessingPolls is how many status reads a new document stays PENDING for.
	// Zero completes documents on upload.
	ProcessingPolls int

	// RateLimit throttles requests.
	RateLimit RateLimitConfig
}

// ConfigFromSettings builds a Config from application settings.
func ConfigFromSettings(s domain.SandboxSettings) Config {
	return Config{
		BaseURL:         s.BaseURL,
		ProcessingPolls: s.ProcessingPolls,
		RateLimit: RateLimitConfig{
			RequestsPerSecond: float64(s.RequestsPerSecond),
			BurstSize:         s.Burst,
		},
	}
}

// Backend is an emulated backend over a RecordStore.
type Backend struct {
	store           driven.RecordStore
	limiter         *RateLimiter
	baseURL         string
	processingPolls int
	now             func() time.Time

	// mu serialises read-modify-write sequences on the store.
	mu     sync.Mutex
	seeded bool
}

// Ensure Backend implements the interface.
var _ driven.APICommunicator = (*Backend)(nil)

// New creates a sandbox backend.
func New(store driven.RecordStore, cfg Config) *Backend {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = domain.DefaultAppSettings().Sandbox.BaseURL
	}
	return &Backend{
		store:           store,
		limiter:         NewRateLimiter(cfg.RateLimit),
		baseURL:         baseURL,
		processingPolls: max(cfg.ProcessingPolls, 0),
		now:             time.Now,
	}
}

// Close closes the underlying store.
func (b *Backend) Close() error {
	return b.store.Close()
}

// begin throttles the request, then locks the backend. The returned
// function unlocks it.
func (b *Backend) begin(ctx context.Context, op string, args ...any) (func(), error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	logger.Debug("sandbox: "+op, args...)
	b.mu.Lock()
	return b.mu.Unlock, nil
}

func (b *Backend) documentLocation(id string) string {
	return b.baseURL + "/documents/" + id
}

func (b *Backend) paymentRequestLocation(id string) string {
	return b.baseURL + "/paymentRequests/" + id
}

// load decodes the record kind/id into v.
func (b *Backend) load(ctx context.Context, kind, id string, v any) error {
	rec, err := b.store.Get(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(rec.Data, v); err != nil {
		return fmt.Errorf("decode %s %s: %w", kind, id, err)
	}
	return nil
}

// save encodes v and stores it as kind/id.
func (b *Backend) save(ctx context.Context, kind, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", kind, id, err)
	}
	return b.store.Put(ctx, &driven.Record{Kind: kind, ID: id, Data: data})
}

// deleteIfExists removes kind/id, ignoring a missing record.
func (b *Backend) deleteIfExists(ctx context.Context, kind, id string) error {
	if err := b.store.Delete(ctx, kind, id); err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

func marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return data, nil
}
