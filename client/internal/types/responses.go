package types

// ------------------------------
// Response Types
// ------------------------------

// DeleteResult is the backend's acknowledgment of a delete operation
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
