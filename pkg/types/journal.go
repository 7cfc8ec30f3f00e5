package types

import "time"

// ConversionStatus describes the outcome of one conversion attempt.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "done"
	ConversionFailed ConversionStatus = "failed"
)

// ConversionRecord is one journal entry: a single conversion attempt and
// its outcome.
type ConversionRecord struct {
	// Input is the source document path.
	Input string `json:"input" yaml:"input"`

	// Output is the produced PDF path; empty when the conversion failed.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Status is done or failed.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Detail carries the failure message for failed conversions.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`

	// Duration is how long the conversion took, at millisecond granularity.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// CreatedAt is when the attempt finished, in UTC.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
