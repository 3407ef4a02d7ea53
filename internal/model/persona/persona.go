package persona

// Persona is a synthetic fictional user profile generated for one
// simulation batch. ID is the zero-based position in the generated batch;
// the record is immutable once generated.
type Persona struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Bio        string   `json:"bio"`
	Traits     []string `json:"traits"`
	Tendencies []string `json:"tendencies"`
}
