package wire

import (
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// MinAppVersionResponse holds the minimum client version per platform.
type MinAppVersionResponse struct {
	Android string `json:"android"`
	IOS     string `json:"ios,omitempty"`
}

// PaymentProviderResponse is the backend representation of a payment provider.
type PaymentProviderResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	MinAppVersion MinAppVersionResponse `json:"minAppVersion"`
}

// ToPaymentProvider maps the response to a domain provider, selecting the
// Android minimum version.
func (r PaymentProviderResponse) ToPaymentProvider() domain.PaymentProvider {
	return domain.PaymentProvider{
		ID:         r.ID,
		Name:       r.Name,
		AppVersion: r.MinAppVersion.Android,
	}
}

// PaymentResponse is the backend representation of a payment.
type PaymentResponse struct {
	PaidAt    string `json:"paidAt"`
	Recipient string `json:"recipient"`
	IBAN      string `json:"iban"`
	BIC       string `json:"bic"`
	Amount    string `json:"amount"`
	Purpose   string `json:"purpose"`
}

// ToPayment maps the response to a domain payment.
func (r PaymentResponse) ToPayment() domain.Payment {
	return domain.Payment{
		PaidAt:    r.PaidAt,
		Recipient: r.Recipient,
		IBAN:      r.IBAN,
		BIC:       r.BIC,
		Amount:    r.Amount,
		Purpose:   r.Purpose,
	}
}

// PaymentRequestBody is the request body that creates a payment request.
type PaymentRequestBody struct {
	SourceDocumentLocation *string `json:"sourceDocumentLocation,omitempty"`
	PaymentProvider        string  `json:"paymentProvider" validate:"required"`
	Recipient              string  `json:"recipient" validate:"required"`
	IBAN                   string  `json:"iban" validate:"required,min=15,max=34,alphanum"`
	BIC                    string  `json:"bic,omitempty" validate:"omitempty,min=8,max=11,alphanum"`
	Amount                 string  `json:"amount" validate:"required"`
	Purpose                string  `json:"purpose" validate:"required"`
}

// NewPaymentRequestBody builds the request body for a payment request input.
func NewPaymentRequestBody(input domain.PaymentRequestInput) PaymentRequestBody {
	return PaymentRequestBody{
		SourceDocumentLocation: input.SourceDocumentLocation,
		PaymentProvider:        input.PaymentProvider,
		Recipient:              input.Recipient,
		IBAN:                   input.IBAN,
		BIC:                    input.BIC,
		Amount:                 input.Amount,
		Purpose:                input.Purpose,
	}
}

// PaymentRequestResponse is the backend representation of a payment request.
type PaymentRequestResponse struct {
	PaymentProvider        string  `json:"paymentProvider"`
	SourceDocumentLocation *string `json:"sourceDocumentLocation,omitempty"`
	Recipient              string  `json:"recipient"`
	IBAN                   string  `json:"iban"`
	BIC                    string  `json:"bic,omitempty"`
	Amount                 string  `json:"amount"`
	Purpose                string  `json:"purpose"`
	Status                 string  `json:"status"`
	CreatedAt              string  `json:"createdAt,omitempty"`
}

// ToPaymentRequest maps the response to a domain payment request.
// The status is copied verbatim.
func (r PaymentRequestResponse) ToPaymentRequest() domain.PaymentRequest {
	return domain.PaymentRequest{
		PaymentProvider:        r.PaymentProvider,
		Recipient:              r.Recipient,
		IBAN:                   r.IBAN,
		BIC:                    r.BIC,
		Amount:                 r.Amount,
		Purpose:                r.Purpose,
		SourceDocumentLocation: r.SourceDocumentLocation,
		Status:                 domain.PaymentRequestStatus(r.Status),
		CreatedAt:              r.CreatedAt,
	}
}

// ResolvePaymentBody is the request body that resolves a payment request.
type ResolvePaymentBody struct {
	Recipient string `json:"recipient" validate:"required"`
	IBAN      string `json:"iban" validate:"required,min=15,max=34,alphanum"`
	BIC       string `json:"bic,omitempty" validate:"omitempty,min=8,max=11,alphanum"`
	Amount    string `json:"amount" validate:"required"`
	Purpose   string `json:"purpose" validate:"required"`
}

// NewResolvePaymentBody builds the request body for a resolve input.
func NewResolvePaymentBody(input domain.ResolvePaymentInput) ResolvePaymentBody {
	return ResolvePaymentBody{
		Recipient: input.Recipient,
		IBAN:      input.IBAN,
		BIC:       input.BIC,
		Amount:    input.Amount,
		Purpose:   input.Purpose,
	}
}

// RequestIDResponse carries the location of a created resource.
type RequestIDResponse struct {
	Location string `json:"location"`
}
