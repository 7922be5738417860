package dto

// BatchPaymentRequest names the receivables to settle and the cash/bank account
// receiving the funds.
type BatchPaymentRequest struct {
	IDs       []string `json:"ids" binding:"required,min=1"`
	AccountID string   `json:"accountID" binding:"required"`
}

// BatchPaymentItemResult reports the outcome for one receivable. Settlement is
// best-effort: a failed item carries its error text and the batch moves on.
type BatchPaymentItemResult struct {
	ReceivableID  string `json:"receivableID"`
	TransactionID string `json:"transactionID,omitempty"`
	Settled       bool   `json:"settled"`
	Error         string `json:"error,omitempty"`
}

// BatchPaymentResponse summarises a batch settlement run.
type BatchPaymentResponse struct {
	Results []BatchPaymentItemResult `json:"results"`
	Settled int                      `json:"settled"`
	Failed  int                      `json:"failed"`
}
