package domain

import "time"

// CompileInfo is the persisted summary of one successful compile. Only
// hashes and metadata survive across sessions; live refs never do.
type CompileInfo struct {
	RecordID     string    `json:"recordId"`
	Origin       string    `json:"origin"`
	OriginalHash string    `json:"originalHash"`
	CompiledHash string    `json:"compiledHash"`
	Dependencies []string  `json:"dependencies,omitempty"`
	CompiledAt   time.Time `json:"compiledAt"`
}
