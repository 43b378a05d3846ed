package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewQueryValues(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		v := ReviewQuery{}.Values()
		assert.Equal(t, "1", v.Get("page"))
		assert.Equal(t, "20", v.Get("page_size"))
		assert.Empty(t, v.Get("status"))
	})

	t.Run("tab overrides status", func(t *testing.T) {
		v := ReviewQuery{Page: 3, Status: "completed", Tab: ReviewTabFailed}.Values()
		assert.Equal(t, "3", v.Get("page"))
		assert.Equal(t, "failed", v.Get("status"))
	})

	t.Run("critical and high score tabs", func(t *testing.T) {
		assert.Equal(t, "true", ReviewQuery{Tab: ReviewTabCritical}.Values().Get("has_critical"))
		assert.Equal(t, "80", ReviewQuery{Tab: ReviewTabHighScore}.Values().Get("min_score"))
	})

	t.Run("unknown tab and oversized page", func(t *testing.T) {
		q := ReviewQuery{PageSize: 1000, Tab: "bogus", Author: "ana"}
		q.Normalize()
		assert.Equal(t, ReviewTabAll, q.Tab)
		assert.Equal(t, 20, q.PageSize)
		assert.Equal(t, "ana", q.Values().Get("author"))
	})
}

func TestFixSuggestionLines(t *testing.T) {
	assert.Equal(t, "L7", (&FixSuggestion{LineStart: 7}).Lines())
	assert.Equal(t, "L7", (&FixSuggestion{LineStart: 7, LineEnd: 7}).Lines())
	assert.Equal(t, "L7-12", (&FixSuggestion{LineStart: 7, LineEnd: 12}).Lines())
}

func TestDashboardTotals(t *testing.T) {
	var empty *DashboardStats
	assert.Zero(t, empty.SeverityTotal())

	s := &DashboardStats{CriticalIssues: 1, HighIssues: 2, LowIssues: 3, QualityIssues: 4}
	assert.Equal(t, 6, s.SeverityTotal())
	assert.Equal(t, 4, s.CategoryTotal())
}
