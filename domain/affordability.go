package domain

type AffordabilityInput struct {
	MaxMonthlyPayment float64 `json:"maxMonthlyPayment"`
	DownPayment       float64 `json:"downPayment"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermYears         int     `json:"termYears"`
}

type PriceRow struct {
	Price          float64 `json:"price"`
	Principal      float64 `json:"principal"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalCost      float64 `json:"totalCost"`
	TotalInterest  float64 `json:"totalInterest"`
}

type RateRow struct {
	RatePercent    float64 `json:"ratePercent"`
	Principal      float64 `json:"principal"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalCost      float64 `json:"totalCost"`
	TotalInterest  float64 `json:"totalInterest"`
}

type AffordabilityReport struct {
	Input            AffordabilityInput `json:"input"`
	MaxPurchasePrice float64            `json:"maxPurchasePrice"`
	Matrix           SensitivityMatrix  `json:"matrix"`
	ByPrice          []PriceRow         `json:"byPrice"`
	ByRate           []RateRow          `json:"byRate"`
	Explanation      string             `json:"explanation,omitempty"`
}
