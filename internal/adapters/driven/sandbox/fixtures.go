package sandbox

import (
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/wire"
)

// Page size in points (A4).
const (
	pageWidth  = 595.0
	pageHeight = 842.0
)

// Payment providers seeded on first use.
var defaultProviders = []wire.PaymentProviderResponse{
	{
		ID:            "7e72441c-32f8-11eb-b611-c3190574373c",
		Name:          "ING-DiBa",
		MinAppVersion: wire.MinAppVersionResponse{Android: "3.5.1", IOS: "3.5.1"},
	},
	{
		ID:            "9a9b41f2-32f8-11eb-9fb5-e378350b0392",
		Name:          "Deutsche Bank",
		MinAppVersion: wire.MinAppVersionResponse{Android: "6.9.1", IOS: "6.9.1"},
	},
}

func box(page int, top float64) *wire.BoxResponse {
	return &wire.BoxResponse{Page: page, Left: 72, Top: top, Width: 180, Height: 12}
}

func specific(entity, value, candidates string, b *wire.BoxResponse) wire.SpecificExtractionResponse {
	return wire.SpecificExtractionResponse{
		ExtractionResponse: wire.ExtractionResponse{Entity: entity, Value: value, Box: b},
		Candidates:         candidates,
	}
}

// sampleExtractions returns the extractions every completed sandbox
// document starts with.
func sampleExtractions() wire.ExtractionsResponse {
	return wire.ExtractionsResponse{
		Extractions: map[string]wire.SpecificExtractionResponse{
			"paymentRecipient": specific("companyname", "Dr. med. Hackler", "", box(1, 96)),
			"iban":             specific("iban", "DE02300209000106531065", "ibans", box(1, 610)),
			"bic":              specific("bic", "CMCIDEDDXXX", "bics", box(1, 626)),
			"amountToPay":      specific("amount", "335.50:EUR", "amounts", box(1, 520)),
			"paymentReference": specific("reference", "ReNr AZ356789Z", "", box(1, 180)),
			"paymentPurpose":   specific("reference", "ReNr AZ356789Z", "", box(1, 180)),
			"docType":          specific("doctype", string(domain.DocumentTypeInvoice), "", nil),
		},
		Candidates: map[string][]wire.ExtractionResponse{
			"ibans": {
				{Entity: "iban", Value: "DE02300209000106531065", Box: box(1, 610)},
			},
			"bics": {
				{Entity: "bic", Value: "CMCIDEDDXXX", Box: box(1, 626)},
			},
			"amounts": {
				{Entity: "amount", Value: "335.50:EUR", Box: box(1, 520)},
				{Entity: "amount", Value: "281.93:EUR", Box: box(1, 488)},
				{Entity: "amount", Value: "53.57:EUR", Box: box(1, 504)},
			},
		},
		CompoundExtractions: map[string][]map[string]wire.SpecificExtractionResponse{
			"lineItems": {
				{
					"description": specific("text", "Consultation", "", box(1, 300)),
					"quantity":    specific("numeric", "1", "", box(1, 300)),
					"baseGross":   specific("amount", "335.50:EUR", "", box(1, 300)),
					"artNumber":   specific("text", "GOÄ 1", "", box(1, 300)),
				},
			},
		},
		ReturnReasons: []wire.ReturnReasonResponse{
			{ID: "r1", Labels: map[string]string{"de": "Passt nicht", "en": "Does not fit"}},
			{ID: "r2", Labels: map[string]string{"de": "Beschädigt", "en": "Damaged"}},
		},
	}
}

// applyFeedback writes corrected values into extractions. Specific
// feedback updates or adds single extractions and keeps their candidates;
// compound feedback replaces whole compound extractions.
func applyFeedback(extractions *wire.ExtractionsResponse, feedback wire.FeedbackBody) {
	if extractions.Extractions == nil {
		extractions.Extractions = make(map[string]wire.SpecificExtractionResponse)
	}
	for name, ex := range feedback.Feedback {
		current := extractions.Extractions[name]
		current.ExtractionResponse = ex
		extractions.Extractions[name] = current
	}

	if len(feedback.CompoundFeedback) == 0 {
		return
	}
	if extractions.CompoundExtractions == nil {
		extractions.CompoundExtractions = make(map[string][]map[string]wire.SpecificExtractionResponse)
	}
	for name, rows := range feedback.CompoundFeedback {
		converted := make([]map[string]wire.SpecificExtractionResponse, 0, len(rows))
		for _, row := range rows {
			mapped := make(map[string]wire.SpecificExtractionResponse, len(row))
			for field, ex := range row {
				mapped[field] = wire.SpecificExtractionResponse{ExtractionResponse: ex}
			}
			converted = append(converted, mapped)
		}
		extractions.CompoundExtractions[name] = converted
	}
}

// sampleLayout returns a layout with one empty A4 page per document page.
func sampleLayout(pageCount int) domain.Layout {
	pages := make([]any, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		pages = append(pages, map[string]any{
			"number":    i,
			"sizeX":     pageWidth,
			"sizeY":     pageHeight,
			"textZones": []any{},
			"regions":   []any{},
		})
	}
	return domain.Layout{"pages": pages}
}
