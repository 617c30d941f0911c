package index

// Document is the indexed representation of a record.
// Fields is serialized as a flat JSON object and fully replaces any existing document.
type Document struct {
	// ID addresses the document and equals the owning record's id.
	ID int64
	// Fields holds every indexable field with its native JSON type.
	Fields map[string]any
}

// Outcome reports how the index acknowledged an upsert.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
)

// Result is the acknowledgment of a successful upsert.
type Result struct {
	// ID is the document id echoed by the index.
	ID string `json:"id"`
	// Outcome distinguishes a new document from an overwrite. Both are successes.
	Outcome Outcome `json:"outcome"`
}

// acknowledgment is the subset of the index response the client reads.
// Older index versions report "created", newer ones report "result".
type acknowledgment struct {
	ID      string `json:"_id"`
	Created *bool  `json:"created"`
	Result  string `json:"result"`
}
