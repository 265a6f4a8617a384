package lib

import "github.com/urbansetu/pricewatch/lib/models"

type sweepMetrics struct {
	totalSelected int
	sent          int
	errored       int
	unchanged     int
	unpriced      int
	orphaned      int
}

func (m *sweepMetrics) skipped() int {
	return m.unchanged + m.unpriced + m.orphaned
}

func (m *sweepMetrics) logArgs() []any {
	args := make([]any, 0)
	if m.sent != 0 {
		args = append(args, "sent", m.sent)
	}
	if m.errored != 0 {
		args = append(args, "errored", m.errored)
	}
	if m.unchanged != 0 {
		args = append(args, "unchanged", m.unchanged)
	}
	if m.unpriced != 0 {
		args = append(args, "unpriced", m.unpriced)
	}
	if m.orphaned != 0 {
		args = append(args, "orphaned", m.orphaned)
	}
	return args
}

func (m *sweepMetrics) fill(result *models.AlertResult) {
	result.TotalEntries = m.totalSelected
	result.SuccessCount = m.sent
	result.ErrorCount = m.errored
	result.SkippedCount = m.skipped()
	result.Success = m.errored == 0
}
