package request

// TransitionRequest is the optional body of workflow transition calls.
// PaymentPassword is required by mark-paid and unmark-paid only.
type TransitionRequest struct {
	PaymentPassword string `json:"payment_password"`
}
