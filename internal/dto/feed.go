package dto

// RegisterFeedRequest stores the user's external calendar feed. Exactly one
// of URL or Payload must be set: URL subscribes to a hosted feed, Payload is
// raw calendar text from an uploaded file.
type RegisterFeedRequest struct {
	URL     string `json:"url"`
	Payload string `json:"payload"`
}
