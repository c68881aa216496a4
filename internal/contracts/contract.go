package contracts

import (
	"time"

	"github.com/google/uuid"
)

// Contract is a single procurement notice as returned by the API. It is read-only
// for this module.
type Contract struct {
	ID                   uuid.UUID  `json:"id"`
	ExternalID           string     `json:"externalId,omitempty"`
	FolderID             string     `json:"folderId,omitempty"`
	Title                string     `json:"title"`
	Summary              string     `json:"summary,omitempty"`
	Status               string     `json:"status,omitempty"`
	UpdatedAt            *Timestamp `json:"updatedAt,omitempty"`
	Link                 string     `json:"link,omitempty"`
	EstimatedAmount      *float64   `json:"estimatedAmount,omitempty"`
	TotalAmount          *float64   `json:"totalAmount,omitempty"`
	TaxExclusiveAmount   *float64   `json:"taxExclusiveAmount,omitempty"`
	Currency             string     `json:"currency,omitempty"`
	TypeCode             string     `json:"typeCode,omitempty"`
	SubtypeCode          string     `json:"subtypeCode,omitempty"`
	CPVCode              string     `json:"cpvCode,omitempty"`
	NUTSCode             string     `json:"nutsCode,omitempty"`
	CountrySubentity     string     `json:"countrySubentity,omitempty"`
	ContractingPartyName string     `json:"contractingPartyName,omitempty"`
	ContractingPartyID   string     `json:"contractingPartyId,omitempty"`
	Source               string     `json:"source,omitempty"`
	SourceFile           string     `json:"sourceFile,omitempty"`
	ImportedAt           *Timestamp `json:"importedAt,omitempty"`
}

// Page is one page of a paged API response.
type Page struct {
	Content       []Contract `json:"content"`
	TotalElements int        `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
	Number        int        `json:"number"`
	Size          int        `json:"size"`
}

// IsEmpty reports whether the page carries no records.
func (p Page) IsEmpty() bool {
	return len(p.Content) == 0
}

// Timestamp decodes the API's local date-times, which come without a zone
// ("2025-03-01T10:15:30" or with fractional seconds), as well as RFC 3339.
type Timestamp struct {
	time.Time
}

// timestampLayouts are tried in order when decoding.
//
//nolint:gochecknoglobals // Fixed decoding table.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// MarshalJSON implements json.Marshaler using the API's zone-less layout.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format("2006-01-02T15:04:05") + `"`), nil
}

// At returns a Timestamp for t.
func At(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// Float returns a pointer to v; handy when building records in code and tests.
func Float(v float64) *float64 {
	return &v
}
