package domain

import "time"

// Answer is a single geotagged response to a question. Answers are
// append-only: created once by submission, never updated or deleted.
type Answer struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"question_id"`
	Text       string    `json:"answer_text"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProximityAnswer is an Answer pre-joined with the text of its owning
// question, as returned by proximity queries. QuestionText may be empty
// when the answer is orphaned; consumers must not fail on that.
type ProximityAnswer struct {
	Answer
	QuestionText string `json:"question_text"`
}

// Location is a transient requester position. Never persisted.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
