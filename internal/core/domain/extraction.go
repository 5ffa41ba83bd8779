package domain

// Box is the position of an extraction on a page.
type Box struct {
	PageNumber int
	Left       float64
	Top        float64
	Width      float64
	Height     float64
}

// Extraction is a single value inferred from a document.
type Extraction struct {
	// Value is the extracted text.
	Value string

	// Entity names the kind of value (amount, iban, date...).
	Entity string

	// Box is where the value was found, if known.
	Box *Box

	// IsDirty is set when a caller changed the value and it should be
	// sent back as feedback.
	IsDirty bool
}

// SpecificExtraction is a named extraction with its alternative candidates.
type SpecificExtraction struct {
	Name string
	Extraction
	Candidates []Extraction
}

// CompoundExtraction groups rows of specific extractions, e.g. line items.
type CompoundExtraction struct {
	Name                   string
	SpecificExtractionMaps []map[string]SpecificExtraction
}

// ReturnReason is a reason a customer may give for returning goods.
type ReturnReason struct {
	ID              string
	LocalizedLabels map[string]string
}

// ExtractionsContainer holds everything the backend extracted for a document.
type ExtractionsContainer struct {
	SpecificExtractions map[string]SpecificExtraction
	CompoundExtractions map[string]CompoundExtraction
	ReturnReasons       []ReturnReason
}
