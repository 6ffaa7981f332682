package domain

// Issue is a persistent failure pattern for the learning memory.
// Only the data shape ships today; promotion and storage logic are
// deliberately absent.
type Issue struct {
	PatternID   string   `json:"pattern_id"`
	Description string   `json:"description"`
	Domain      string   `json:"domain"`
	Severity    Severity `json:"severity"`
	Frequency   int      `json:"frequency"`
	FirstSeen   string   `json:"first_seen"`
	LastSeen    string   `json:"last_seen"`
	// Mandatory marks patterns frequent enough to be auto-included in
	// every future run.
	Mandatory  bool   `json:"mandatory"`
	MetaLesson string `json:"meta_lesson,omitempty"`
}
