package domain

// ResponseCode is the coded result returned by the payment and device
// search collaborators.
type ResponseCode string

const (
	CodeSuccess           ResponseCode = "SU"
	CodeValidationFailure ResponseCode = "VF"
	CodeAuthFailure       ResponseCode = "AF"
	CodeDatabaseError     ResponseCode = "DBE"
)

// CheckoutState tracks where a checkout context is in the submission
// state machine.
type CheckoutState string

const (
	CheckoutStateIdle       CheckoutState = "IDLE"
	CheckoutStateSubmitting CheckoutState = "SUBMITTING"
)

// RentDatetimeLayout is the textual date-time convention the payment
// collaborator expects for rentDatetime and rentReturnDatetime.
const RentDatetimeLayout = "2006-01-02 15:04:05"

// CheckoutRequest is the payment submission payload. The JSON field
// names are the collaborator's wire contract and must not change.
// Built fresh at submission time and never mutated afterwards.
type CheckoutRequest struct {
	RentUserID         string   `json:"rentUserId"`
	RentSerialNumbers  []string `json:"rentSerialNumber"`
	RentPlace          string   `json:"rentPlace"`
	RentReturnPlace    string   `json:"rentReturnPlace"`
	RentDatetime       string   `json:"rentDatetime"`
	RentReturnDatetime string   `json:"rentReturnDatetime"`
	RentTotalPrice     int32    `json:"rentTotalPrice"`
	RentStatus         string   `json:"rentStatus"`
}

// PaymentResponse is the envelope returned by the payment collaborator.
type PaymentResponse struct {
	Code              ResponseCode `json:"code"`
	Message           string       `json:"message,omitempty"`
	NextRedirectPcURL string       `json:"nextRedirectPcUrl,omitempty"`
}

// CheckoutOutcome is the user-facing result of a submission attempt:
// either a redirect to the payment page, or a message plus an optional
// navigation back to the home boundary. Items and TotalPrice carry the
// basket snapshot for the success view.
type CheckoutOutcome struct {
	Code         ResponseCode `json:"code"`
	Message      string       `json:"message,omitempty"`
	RedirectURL  string       `json:"redirect_url,omitempty"`
	NavigateHome bool         `json:"navigate_home,omitempty"`
	Items        []BasketItem `json:"items,omitempty"`
	TotalPrice   int32        `json:"total_price,omitempty"`
}

// CheckoutRecord is the persisted snapshot of a submitted checkout.
type CheckoutRecord struct {
	ID                 int32        `json:"id"`
	SubmissionID       string       `json:"submission_id"`
	UserID             string       `json:"user_id"`
	SerialNumbers      []string     `json:"serial_numbers"`
	RentPlace          string       `json:"rent_place"`
	RentReturnPlace    string       `json:"rent_return_place"`
	RentDatetime       string       `json:"rent_datetime"`
	RentReturnDatetime string       `json:"rent_return_datetime"`
	TotalPrice         int32        `json:"total_price"`
	ResponseCode       ResponseCode `json:"response_code"`
	RedirectURL        string       `json:"redirect_url"`
	CreatedOn          string       `json:"created_on"`
}
