package recorder

import "DominanceSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAnalysis(_ *model.Analysis) (string, error)           { return "", nil }
func (n *NoopRecorder) RecordFailure(_ model.Pair, _ error) error                  { return nil }
func (n *NoopRecorder) RecentAnalyses(_ string, _ int) ([]AnalysisRecord, error) { return nil, nil }
func (n *NoopRecorder) Close() error                                               { return nil }
