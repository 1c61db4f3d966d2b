package entity

// Decision paths recorded in the reasoning trace.
const (
	PathPattern      = "pattern"
	PathBrandDefault = "brand_default"
	PathInference    = "inference"
)

// ReasoningStep is one labeled step of the classification rationale.
type ReasoningStep struct {
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

// ClassificationResult is the terminal artifact of a pipeline run. Immutable
// once produced; safe to cache as-is.
type ClassificationResult struct {
	Amount      int64           `json:"amount"`
	UsageAt     string          `json:"usage_at"`
	Location    string          `json:"location"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Confidence  float64         `json:"confidence"`
	Path        string          `json:"path"`
	Trace       []ReasoningStep `json:"trace"`
}
