package models

// UpdateResult is the outcome of one shape or cell update.
type UpdateResult struct {
	// Success reports whether the text was replaced.
	Success bool `json:"success"`
	// Target describes the shape or cell, e.g. "Slide 1, Shape 2, Cell (0,1)".
	Target string `json:"target"`
	// OriginalLength is the character count of the replaced text.
	OriginalLength int `json:"original_length"`
	// NewLength is the character count of the new text.
	NewLength int `json:"new_length"`
	// Warnings holds advisory messages such as possible overflow.
	Warnings []string `json:"warnings,omitempty"`
	// Error is the failure reason when Success is false.
	Error string `json:"error,omitempty"`
}

// Report summarizes one update run.
type Report struct {
	// UpdatesApplied counts successful shape and cell updates.
	UpdatesApplied int `json:"updates_applied"`
	// Errors lists failed instructions and cells.
	Errors []string `json:"errors"`
	// Warnings lists advisory messages, qualified by target.
	Warnings []string `json:"warnings"`
	// OutputPath is where the updated presentation was written.
	OutputPath string `json:"output_path,omitempty"`
	// Results holds every per-target result in application order.
	Results []UpdateResult `json:"results,omitempty"`
}

// OK reports whether the run finished without errors. Warnings do not
// count against it.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}
