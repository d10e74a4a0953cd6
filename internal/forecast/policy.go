package forecast

// Policy carries the tunable planning ratios. The defaults are operational
// conventions, not physical laws; operators can override both via config.
type Policy struct {
	// MinThroughputRatio scales batchesMax down to the conservative
	// batchesMin lower bound.
	MinThroughputRatio float64
	// MinYieldRatio scales volumeMax down to volumeMin.
	MinYieldRatio float64
}

// DefaultPolicy returns the stock planning ratios.
func DefaultPolicy() Policy {
	return Policy{
		MinThroughputRatio: 0.7,
		MinYieldRatio:      0.85,
	}
}
