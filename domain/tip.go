package domain

type TipInput struct {
	BillAmount float64
	TipPercent float64
}

type TipResult struct {
	TipAmount   float64 `json:"tip_amount"`
	TotalAmount float64 `json:"total_amount"`
}
