package domain

// PaymentRequestStatus is the lifecycle state of a payment request.
type PaymentRequestStatus string

// Payment request states.
const (
	PaymentRequestStatusOpen         PaymentRequestStatus = "open"
	PaymentRequestStatusPaid         PaymentRequestStatus = "paid"
	PaymentRequestStatusPaidAdjusted PaymentRequestStatus = "paid_adjusted"
	PaymentRequestStatusExpired      PaymentRequestStatus = "expired"
	PaymentRequestStatusCanceled     PaymentRequestStatus = "canceled"
)

// IsValid returns true if the status is one of the known states.
// Statuses are kept as the backend sent them, so unknown values survive mapping.
func (s PaymentRequestStatus) IsValid() bool {
	switch s {
	case PaymentRequestStatusOpen, PaymentRequestStatusPaid, PaymentRequestStatusPaidAdjusted,
		PaymentRequestStatusExpired, PaymentRequestStatusCanceled:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s PaymentRequestStatus) String() string {
	return string(s)
}

// PaymentProvider is a banking app the backend can route payment requests to.
type PaymentProvider struct {
	ID   string
	Name string

	// AppVersion is the minimum client app version that supports the provider.
	AppVersion string
}

// PaymentRequestInput holds the fields a caller supplies to create a payment request.
type PaymentRequestInput struct {
	PaymentProvider string
	Recipient       string
	IBAN            string
	BIC             string
	Amount          string
	Purpose         string

	// SourceDocumentLocation optionally links the request to the document
	// its values were extracted from.
	SourceDocumentLocation *string
}

// PaymentRequest is a payment request as stored by the backend.
type PaymentRequest struct {
	PaymentProvider string
	Recipient       string
	IBAN            string
	BIC             string
	Amount          string
	Purpose         string

	// SourceDocumentLocation is nil when the request was created without a document.
	SourceDocumentLocation *string

	Status PaymentRequestStatus

	// CreatedAt is opaque, like Payment.PaidAt.
	CreatedAt string
}

// ResolvePaymentInput holds the fields a caller supplies to mark a payment
// request as paid.
type ResolvePaymentInput struct {
	Recipient string
	IBAN      string
	BIC       string
	Amount    string
	Purpose   string
}

// Payment is the settled result of a resolved payment request.
// All fields are opaque strings as returned by the backend.
type Payment struct {
	PaidAt    string
	Recipient string
	IBAN      string
	BIC       string
	Amount    string
	Purpose   string
}
