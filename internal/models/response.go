package models

// Fixed response messages.
const (
	HealthyMessage       = "UP"
	InternalErrorMessage = "An internal server error occurred."
)

// MessageResponse is the JSON body of every response this API produces.
type MessageResponse struct {
	Message string `json:"message"`
}
