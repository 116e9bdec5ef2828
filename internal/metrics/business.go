package metrics

// IncrementBoardCreated increments board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardCreatedTotal.Inc()
	})
}

// IncrementGoalCreated increments goal creation counter
func (m *Metrics) IncrementGoalCreated() {
	m.safeExecute("IncrementGoalCreated", func() {
		m.GoalCreatedTotal.Inc()
	})
}

// SetBoardsTotal sets the live boards gauge
func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}

// SetGoalsTotal sets the non-archived goals gauge
func (m *Metrics) SetGoalsTotal(count int64) {
	m.safeExecute("SetGoalsTotal", func() {
		m.GoalsTotal.Set(float64(count))
	})
}
