package model

// MaxSampleEntries bounds the sample of non-normal matches in a report
const MaxSampleEntries = 5

// Report is the outcome of one supply mapping run
type Report struct {
	Cards    int `json:"cards"`    // Cards scanned
	Supplies int `json:"supplies"` // Supply records fetched
	Indexed  int `json:"indexed"`  // Distinct supply ids in the index
	Skipped  int `json:"skipped"`  // Supply records without id or cardSupplyType

	Mapped   int `json:"mapped"`   // Cards whose cardSupplyId is in the index
	Fallback int `json:"fallback"` // Cards classified as FallbackSupplyType

	Fetches []FetchMeta `json:"fetches"` // One per dataset, in fetch order

	Sample []SampleEntry  `json:"sample"`  // First non-normal matches, at most MaxSampleEntries
	ByType map[string]int `json:"by_type"` // Cards per classification
}

// SampleEntry is a card shown for manual inspection
type SampleEntry struct {
	ID         ID     `json:"id"`
	SupplyType string `json:"supply_type"`
}

// Verified reports whether at least one card was mapped through the index
func (r *Report) Verified() bool {
	return r.Mapped > 0
}

// FetchMeta contains HTTP metadata from fetching a dataset
type FetchMeta struct {
	URL         string `json:"url"`
	FinalURL    string `json:"final_url"`
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type,omitempty"`
	ETag        string `json:"etag,omitempty"`
	Bytes       int    `json:"bytes"`
}
