// Package detail renders payment requests and payments as labelled boxes.
package detail

import (
	"strings"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// PaymentRequest renders every field of req. Optional fields are
// omitted when unset and unknown statuses are flagged.
func PaymentRequest(s *styles.Styles, req *domain.PaymentRequest) string {
	status := s.Status(req.Status).Render(string(req.Status))
	if !req.Status.IsValid() {
		status += s.Muted.Render(" (unrecognised)")
	}

	rows := []string{
		field(s, "Status", status),
		field(s, "Provider", req.PaymentProvider),
		field(s, "Recipient", req.Recipient),
		field(s, "IBAN", req.IBAN),
	}
	if req.BIC != "" {
		rows = append(rows, field(s, "BIC", req.BIC))
	}
	rows = append(rows, field(s, "Amount", req.Amount), field(s, "Purpose", req.Purpose))
	if req.SourceDocumentLocation != nil {
		rows = append(rows, field(s, "Document", *req.SourceDocumentLocation))
	}
	if req.CreatedAt != "" {
		rows = append(rows, field(s, "Created", req.CreatedAt))
	}
	return s.Border.Render(strings.Join(rows, "\n"))
}

// Payment renders every field of p.
func Payment(s *styles.Styles, p *domain.Payment) string {
	rows := []string{
		field(s, "Paid at", p.PaidAt),
		field(s, "Recipient", p.Recipient),
		field(s, "IBAN", p.IBAN),
	}
	if p.BIC != "" {
		rows = append(rows, field(s, "BIC", p.BIC))
	}
	rows = append(rows, field(s, "Amount", p.Amount), field(s, "Purpose", p.Purpose))
	return s.Border.Render(strings.Join(rows, "\n"))
}

func field(s *styles.Styles, label, value string) string {
	return s.Label.Render(label) + value
}
