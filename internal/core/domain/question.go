package domain

type Question struct {
	ID      int64    `json:"id"`
	Text    string   `json:"question_text"`
	Options []Option `json:"options"`
}

type Option struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Text       string `json:"option_text"`
}
