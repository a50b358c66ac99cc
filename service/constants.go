package service

const (
	MaxInterestRatePercent = 100.0
	MaxTermYears           = 50

	// Price window shared by the matrix and the price table: ±25% of the
	// center in steps of 5% of the center.
	PriceWindowLow  = 0.75
	PriceWindowHigh = 1.25
	PriceStepRatio  = 0.05
	PriceRounding   = 1000.0

	// MaxPrice caps the center of a price axis so every step fits in an
	// int64 with room to spare.
	MaxPrice = 1e12

	// Matrix rate candidates run 2.00%..10.50% in 0.50 steps (basis points,
	// end exclusive) and are kept within ±2 points of the center.
	MatrixRateStartBps = 200
	MatrixRateEndBps   = 1100
	MatrixRateStepBps  = 50
	MatrixRateWindow   = 2.0
	MatrixTermYears    = 30

	// Rate table candidates run 2.00%..10.75% in 0.25 steps and are kept
	// within ±3 points of the center.
	TableRateStartBps = 200
	TableRateEndBps   = 1100
	TableRateStepBps  = 25
	TableRateWindow   = 3.0

	DefaultTermYears    = 30
	MaxQuoteComparisons = 11
)
