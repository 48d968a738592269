package domain

// OptionTally is one answer text with its vote count and share of the
// bucket total, percentage rounded to one decimal place.
type OptionTally struct {
	Text       string  `json:"option_text"`
	VoteCount  int64   `json:"vote_count"`
	Percentage float64 `json:"percentage"`
}

// QuestionResult is the aggregated view of one question bucket. Options
// are ordered by descending vote count; ties keep first-encounter order.
type QuestionResult struct {
	QuestionText string        `json:"question_text"`
	TotalVotes   int64         `json:"total_votes"`
	Options      []OptionTally `json:"options"`
}
