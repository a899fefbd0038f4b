package domain

import "time"

// RequestStatusPending is the status every new request starts in. Status is an
// open string; updates accept any value and transitions are unchecked.
const RequestStatusPending = "Pending"

// Request is a user's product request tracked through status updates.
type Request struct {
	ID          string
	Username    string
	ProductName string
	Quantity    int
	RequestDate time.Time
	Status      string
}
