package entity

import (
	"time"
)

// Email represents an email message fetched from Gmail
type Email struct {
	EmailID    string
	From       string
	To         string
	Subject    string
	DateHeader string
	Body       string
	HTMLBody   string
	ReceivedAt time.Time
}
