package dto

// Envelope is the uniform response wrapper: {status, message?, data?}.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// Pagination is the listing metadata. Total is a real count, not the page size.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}
