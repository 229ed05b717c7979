package booking

// Status is the workflow stage of a booking. Transitions between statuses
// go through the workflow table in workflow.go; nothing else may change it.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusQuoted    Status = "quoted"
	StatusPaid      Status = "paid"
	StatusVouchered Status = "vouchered"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusConfirmed, StatusQuoted,
		StatusPaid, StatusVouchered, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Event is a workflow transition trigger.
type Event string

const (
	EventConfirm         Event = "confirm"
	EventCreateQuote     Event = "create_quote"
	EventMarkPaid        Event = "mark_paid"
	EventUnmarkPaid      Event = "unmark_paid"
	EventGenerateVoucher Event = "generate_voucher"
	EventComplete        Event = "complete"
	EventCancel          Event = "cancel"
)

func (e Event) String() string {
	return string(e)
}

// InvoiceStatus mirrors the billing side of the workflow.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "unpaid"
	InvoiceStatusPaid   InvoiceStatus = "paid"
)

func (s InvoiceStatus) String() string {
	return string(s)
}
