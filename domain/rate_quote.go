package domain

type RateQuote struct {
	ProductName string  `json:"productName" yaml:"product_name"`
	RatePercent float64 `json:"ratePercent" yaml:"rate_percent"`
	APRPercent  float64 `json:"aprPercent" yaml:"apr_percent"`
	TermYears   int     `json:"termYears" yaml:"term_years"`
	Change      string  `json:"change,omitempty" yaml:"change,omitempty"`
}

type QuoteCost struct {
	Quote          RateQuote `json:"quote"`
	Principal      float64   `json:"principal"`
	MonthlyPayment float64   `json:"monthlyPayment"`
	TotalCost      float64   `json:"totalCost"`
	TotalInterest  float64   `json:"totalInterest"`
}
