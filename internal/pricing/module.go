package pricing

import "go.uber.org/fx"

// Module provides the points ledger and calculator for the configured Policy.
var Module = fx.Provide(
	NewPointsLedger,
	NewCalculator,
)
