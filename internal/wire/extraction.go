package wire

import (
	"encoding/json"
	"strings"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// BoxResponse is the position of an extraction on a page.
type BoxResponse struct {
	Page   int     `json:"page"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ExtractionResponse is one extracted value.
type ExtractionResponse struct {
	Entity string       `json:"entity"`
	Value  string       `json:"value"`
	Box    *BoxResponse `json:"box,omitempty"`
}

// SpecificExtractionResponse is a named extraction. Candidates names an
// entry in the response's candidates map.
type SpecificExtractionResponse struct {
	ExtractionResponse
	Candidates string `json:"candidates,omitempty"`
}

// ReturnReasonResponse is a return reason with labels keyed
// "description_<lang>" on the wire.
type ReturnReasonResponse struct {
	ID     string
	Labels map[string]string
}

const labelPrefix = "description_"

// UnmarshalJSON collects every description_<lang> key into Labels.
func (r *ReturnReasonResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ID = raw["id"]
	r.Labels = make(map[string]string)
	for k, v := range raw {
		if lang, ok := strings.CutPrefix(k, labelPrefix); ok {
			r.Labels[lang] = v
		}
	}
	return nil
}

// MarshalJSON writes Labels back as description_<lang> keys.
func (r ReturnReasonResponse) MarshalJSON() ([]byte, error) {
	raw := map[string]string{"id": r.ID}
	for lang, label := range r.Labels {
		raw[labelPrefix+lang] = label
	}
	return json.Marshal(raw)
}

// ExtractionsResponse is everything the backend extracted for a document.
type ExtractionsResponse struct {
	Extractions         map[string]SpecificExtractionResponse              `json:"extractions"`
	Candidates          map[string][]ExtractionResponse                    `json:"candidates"`
	CompoundExtractions map[string][]map[string]SpecificExtractionResponse `json:"compoundExtractions,omitempty"`
	ReturnReasons       []ReturnReasonResponse                             `json:"returnReasons,omitempty"`
}

// ToExtractionsContainer maps the response to domain extractions, resolving
// each extraction's candidates reference.
func (r ExtractionsResponse) ToExtractionsContainer() *domain.ExtractionsContainer {
	container := &domain.ExtractionsContainer{
		SpecificExtractions: make(map[string]domain.SpecificExtraction, len(r.Extractions)),
		CompoundExtractions: make(map[string]domain.CompoundExtraction, len(r.CompoundExtractions)),
	}
	for name, ex := range r.Extractions {
		container.SpecificExtractions[name] = r.toSpecific(name, ex)
	}
	for name, rows := range r.CompoundExtractions {
		compound := domain.CompoundExtraction{Name: name}
		for _, row := range rows {
			mapped := make(map[string]domain.SpecificExtraction, len(row))
			for field, ex := range row {
				mapped[field] = r.toSpecific(field, ex)
			}
			compound.SpecificExtractionMaps = append(compound.SpecificExtractionMaps, mapped)
		}
		container.CompoundExtractions[name] = compound
	}
	for _, rr := range r.ReturnReasons {
		container.ReturnReasons = append(container.ReturnReasons, domain.ReturnReason{
			ID:              rr.ID,
			LocalizedLabels: rr.Labels,
		})
	}
	return container
}

func (r ExtractionsResponse) toSpecific(name string, ex SpecificExtractionResponse) domain.SpecificExtraction {
	specific := domain.SpecificExtraction{
		Name:       name,
		Extraction: ex.ExtractionResponse.toExtraction(),
	}
	if ex.Candidates != "" {
		for _, c := range r.Candidates[ex.Candidates] {
			specific.Candidates = append(specific.Candidates, c.toExtraction())
		}
	}
	return specific
}

func (e ExtractionResponse) toExtraction() domain.Extraction {
	ex := domain.Extraction{Value: e.Value, Entity: e.Entity}
	if e.Box != nil {
		ex.Box = &domain.Box{
			PageNumber: e.Box.Page,
			Left:       e.Box.Left,
			Top:        e.Box.Top,
			Width:      e.Box.Width,
			Height:     e.Box.Height,
		}
	}
	return ex
}

func fromExtraction(ex domain.Extraction) ExtractionResponse {
	out := ExtractionResponse{Entity: ex.Entity, Value: ex.Value}
	if ex.Box != nil {
		out.Box = &BoxResponse{
			Page:   ex.Box.PageNumber,
			Left:   ex.Box.Left,
			Top:    ex.Box.Top,
			Width:  ex.Box.Width,
			Height: ex.Box.Height,
		}
	}
	return out
}

// FeedbackBody is the request body that sends corrected extractions back.
type FeedbackBody struct {
	Feedback         map[string]ExtractionResponse              `json:"feedback"`
	CompoundFeedback map[string][]map[string]ExtractionResponse `json:"compoundFeedback,omitempty"`
}

// NewFeedbackBody builds a feedback body keyed by extraction name.
func NewFeedbackBody(specific map[string]domain.SpecificExtraction, compound map[string]domain.CompoundExtraction) FeedbackBody {
	body := FeedbackBody{Feedback: make(map[string]ExtractionResponse, len(specific))}
	for name, ex := range specific {
		body.Feedback[name] = fromExtraction(ex.Extraction)
	}
	if len(compound) > 0 {
		body.CompoundFeedback = make(map[string][]map[string]ExtractionResponse, len(compound))
		for name, c := range compound {
			rows := make([]map[string]ExtractionResponse, 0, len(c.SpecificExtractionMaps))
			for _, row := range c.SpecificExtractionMaps {
				mapped := make(map[string]ExtractionResponse, len(row))
				for field, ex := range row {
					mapped[field] = fromExtraction(ex.Extraction)
				}
				rows = append(rows, mapped)
			}
			body.CompoundFeedback[name] = rows
		}
	}
	return body
}
