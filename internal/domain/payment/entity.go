package payment

import "time"

// Method is how the guest pays.
type Method string

const (
	MethodCard         Method = "card"
	MethodMobileMoney  Method = "mobile_money"
	MethodBankTransfer Method = "bank_transfer"
)

// Status of a payment attempt.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Record is the result of one payment attempt. TransactionID is set only when completed.
type Record struct {
	ReservationID string    `json:"reservation_id"`
	Amount        int64     `json:"amount"`
	Method        Method    `json:"method"`
	Status        Status    `json:"status"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Message       string    `json:"message,omitempty"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// Form carries the method-specific fields typed by the guest.
type Form struct {
	CardNumber        string `json:"card_number,omitempty"`
	HolderName        string `json:"holder_name,omitempty"`
	Expiration        string `json:"expiration,omitempty"`
	CVV               string `json:"cvv,omitempty"`
	Operator          string `json:"operator,omitempty"`
	MobileNumber      string `json:"mobile_number,omitempty"`
	TransferReference string `json:"transfer_reference,omitempty"`
}

// Request is one call to the simulator.
type Request struct {
	Method        Method
	Form          Form
	Amount        int64
	ReservationID string
}

// BankDetails is shown to guests paying by transfer.
type BankDetails struct {
	Bank   string `json:"bank"`
	Holder string `json:"holder"`
	IBAN   string `json:"iban"`
	SWIFT  string `json:"swift"`
}

// MethodInfo describes a payment method for the payment step.
type MethodInfo struct {
	Method    Method       `json:"method"`
	Label     string       `json:"label"`
	Operators []string     `json:"operators,omitempty"`
	Bank      *BankDetails `json:"bank,omitempty"`
}

// MobileOperators lists the accepted mobile money operators.
var MobileOperators = []string{"mtn", "moov", "orange"}

// HotelBankDetails is the account transfers are paid into.
var HotelBankDetails = BankDetails{
	Bank:   "Ecobank Bénin",
	Holder: "Hôtel Horizon Cotonou",
	IBAN:   "BJ07 00010 0012345678901234",
	SWIFT:  "ECOBJBJA",
}

// Methods lists the supported payment methods.
func Methods() []MethodInfo {
	bank := HotelBankDetails
	return []MethodInfo{
		{Method: MethodCard, Label: "Carte bancaire"},
		{Method: MethodMobileMoney, Label: "Mobile Money", Operators: append([]string(nil), MobileOperators...)},
		{Method: MethodBankTransfer, Label: "Virement bancaire", Bank: &bank},
	}
}
