package recorder

import (
	"errors"
	"time"

	"DominanceSentinel/internal/model"
)

// Failure kinds stored with failed runs.
const (
	KindInvalidInput        = "INVALID_INPUT_DATA"
	KindInsufficientHistory = "INSUFFICIENT_HISTORY"
	KindError               = "ERROR"
)

// FailureKind maps an analysis error to the kind stored in history.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidInputData):
		return KindInvalidInput
	case errors.Is(err, model.ErrInsufficientHistory):
		return KindInsufficientHistory
	default:
		return KindError
	}
}

// AnalysisRecord is one stored analysis run.
type AnalysisRecord struct {
	ID          string
	RecordedAt  time.Time
	Pair        string
	AsOf        time.Time
	Dominance   float64
	RSI         float64
	MACDHist    float64
	MAShort     float64
	MALong      float64
	Crossover   model.CrossoverState
	RSISignal   model.RSISignal
	MACDSignal  model.MACDSignal
	TrendSignal model.TrendSignal
	Report      model.Report
}

// Recorder persists analysis history.
type Recorder interface {
	RecordAnalysis(a *model.Analysis) (string, error)
	RecordFailure(pair model.Pair, err error) error
	RecentAnalyses(pair string, limit int) ([]AnalysisRecord, error)
	Close() error
}
