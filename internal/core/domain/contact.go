package domain

import "time"

// ContactMessage is a lead captured by the public contact form. The
// frontend owns these; they never travel to the upstream API.
type ContactMessage struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}
