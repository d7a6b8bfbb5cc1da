package contract

const (
	MaxTitleLength   = 255
	MaxContentLength = 50000
)

// EntryRequest is the body accepted by both create and update.
// Absent fields decode as empty strings and fail the required check.
type EntryRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required,max=50000"`
}

type EntryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type EntryEnvelope struct {
	Entry *EntryResponse `json:"entry"`
}

type EntryListEnvelope struct {
	Entries []*EntryResponse `json:"entries"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
