package payment

type Method string

const (
	MethodCard         Method = "card"
	MethodBkash        Method = "bkash"
	MethodStripe       Method = "stripe"
	MethodBankTransfer Method = "bank_transfer"
	MethodMidtrans     Method = "midtrans"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)
