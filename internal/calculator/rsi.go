package calculator

// RSISeries computes the RSI at every index using simple (not Wilder) averages of gains and
// losses over a grow-then-slide window. The first delta is taken as zero, so every index has
// a value.
//
// avgGain == avgLoss == 0 yields 50 and avgLoss == 0 with avgGain > 0 yields 100.
func RSISeries(values []float64, window int) []float64 {
	gains := make([]float64, len(values))
	losses := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	avgGain := RollingMean(gains, window)
	avgLoss := RollingMean(losses, window)

	out := make([]float64, len(values))
	for i := range values {
		out[i] = rsiFromAverages(avgGain[i], avgLoss[i])
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0
		}
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
