package sandbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/logger"
	"github.com/custodia-labs/docpay-cli/internal/wire"
)

// paidAtLayout is the backend's payment timestamp format (no zone).
const paidAtLayout = "2006-01-02T15:04:05"

// ensureProviders seeds the default payment providers into an empty store.
// Callers hold b.mu.
func (b *Backend) ensureProviders(ctx context.Context) error {
	if b.seeded {
		return nil
	}
	existing, err := b.store.List(ctx, kindProvider)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		for _, p := range defaultProviders {
			if err := b.save(ctx, kindProvider, p.ID, p); err != nil {
				return fmt.Errorf("seed payment provider %s: %w", p.Name, err)
			}
		}
	}
	b.seeded = true
	return nil
}

// GetPaymentProviders returns every payment provider.
func (b *Backend) GetPaymentProviders(ctx context.Context) ([]byte, error) {
	done, err := b.begin(ctx, "list payment providers")
	if err != nil {
		return nil, err
	}
	defer done()

	if err := b.ensureProviders(ctx); err != nil {
		return nil, err
	}
	records, err := b.store.List(ctx, kindProvider)
	if err != nil {
		return nil, err
	}
	providers := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		providers = append(providers, rec.Data)
	}
	return marshal(providers)
}

// GetPaymentProvider returns one payment provider.
func (b *Backend) GetPaymentProvider(ctx context.Context, id string) ([]byte, error) {
	done, err := b.begin(ctx, "get payment provider %s", id)
	if err != nil {
		return nil, err
	}
	defer done()

	if err := b.ensureProviders(ctx); err != nil {
		return nil, err
	}
	rec, err := b.store.Get(ctx, kindProvider, id)
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}

// PostPaymentRequest validates and stores an open payment request and
// returns its location.
func (b *Backend) PostPaymentRequest(ctx context.Context, body []byte) ([]byte, error) {
	done, err := b.begin(ctx, "create payment request")
	if err != nil {
		return nil, err
	}
	defer done()

	var req wire.PaymentRequestBody
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: payment request body: %v", domain.ErrInvalidInput, err)
	}
	if err := validateBody(req); err != nil {
		return nil, err
	}

	if err := b.ensureProviders(ctx); err != nil {
		return nil, err
	}
	if _, err := b.store.Get(ctx, kindProvider, req.PaymentProvider); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPaymentProvider, req.PaymentProvider)
		}
		return nil, err
	}

	id := uuid.NewString()
	stored := wire.PaymentRequestResponse{
		PaymentProvider: req.PaymentProvider,
		Recipient:       req.Recipient,
		IBAN:            req.IBAN,
		BIC:             req.BIC,
		Amount:          req.Amount,
		Purpose:         req.Purpose,
		Status:          string(domain.PaymentRequestStatusOpen),
		CreatedAt:       b.now().UTC().Format(paidAtLayout),

		SourceDocumentLocation: req.SourceDocumentLocation,
	}
	if err := b.save(ctx, kindPaymentRequest, id, stored); err != nil {
		return nil, err
	}
	return marshal(wire.RequestIDResponse{Location: b.paymentRequestLocation(id)})
}

// GetPaymentRequest returns one payment request.
func (b *Backend) GetPaymentRequest(ctx context.Context, id string) ([]byte, error) {
	done, err := b.begin(ctx, "get payment request %s", id)
	if err != nil {
		return nil, err
	}
	defer done()

	rec, err := b.store.Get(ctx, kindPaymentRequest, id)
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}

// GetPaymentRequests returns every payment request in creation order.
func (b *Backend) GetPaymentRequests(ctx context.Context) ([]byte, error) {
	done, err := b.begin(ctx, "list payment requests")
	if err != nil {
		return nil, err
	}
	defer done()

	records, err := b.store.List(ctx, kindPaymentRequest)
	if err != nil {
		return nil, err
	}
	requests := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		requests = append(requests, rec.Data)
	}
	return marshal(requests)
}

// ResolvePaymentRequest pays an open payment request. The request becomes
// paid, or paid_adjusted when the paid amount differs from the requested
// one, and the payment is stored under the request id.
func (b *Backend) ResolvePaymentRequest(ctx context.Context, requestID string, body []byte) ([]byte, error) {
	done, err := b.begin(ctx, "resolve payment request %s", requestID)
	if err != nil {
		return nil, err
	}
	defer done()

	var resolve wire.ResolvePaymentBody
	if err := json.Unmarshal(body, &resolve); err != nil {
		return nil, fmt.Errorf("%w: resolve body: %v", domain.ErrInvalidInput, err)
	}
	if err := validateBody(resolve); err != nil {
		return nil, err
	}

	var req wire.PaymentRequestResponse
	if err := b.load(ctx, kindPaymentRequest, requestID, &req); err != nil {
		return nil, err
	}
	if req.Status != string(domain.PaymentRequestStatusOpen) {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrPaymentRequestNotOpen, requestID, req.Status)
	}

	payment := wire.PaymentResponse{
		PaidAt:    b.now().UTC().Format(paidAtLayout),
		Recipient: resolve.Recipient,
		IBAN:      resolve.IBAN,
		BIC:       resolve.BIC,
		Amount:    resolve.Amount,
		Purpose:   resolve.Purpose,
	}
	if err := b.save(ctx, kindPayment, requestID, payment); err != nil {
		return nil, err
	}

	req.Status = string(domain.PaymentRequestStatusPaid)
	if resolve.Amount != req.Amount {
		req.Status = string(domain.PaymentRequestStatusPaidAdjusted)
	}
	if err := b.save(ctx, kindPaymentRequest, requestID, req); err != nil {
		if derr := b.deleteIfExists(ctx, kindPayment, requestID); derr != nil {
			logger.Warn("sandbox: removing payment %s: %v", requestID, derr)
		}
		return nil, err
	}

	return marshal(wire.RequestIDResponse{Location: b.paymentRequestLocation(requestID) + "/payment"})
}

// GetPayment returns the payment of a resolved payment request.
func (b *Backend) GetPayment(ctx context.Context, id string) ([]byte, error) {
	done, err := b.begin(ctx, "get payment %s", id)
	if err != nil {
		return nil, err
	}
	defer done()

	rec, err := b.store.Get(ctx, kindPayment, id)
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}
