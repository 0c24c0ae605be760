package models

import "time"

type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

type TicketReply struct {
	ID        int       `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	FromAdmin bool      `json:"from_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Ticket is a support request raised by a customer account.
type Ticket struct {
	ID        int           `json:"id"`
	AccountID int           `json:"account_id"`
	Subject   string        `json:"subject"`
	Body      string        `json:"body"`
	Status    TicketStatus  `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	Replies   []TicketReply `json:"replies,omitempty"`
}

type TicketReplyInput struct {
	Body string `json:"body"`
}
