package answer

type CreateAnswerDTO struct {
	AttemptID      int64 `json:"attempt_id"`
	QuestionID     int64 `json:"question_id"`
	SelectedOption int   `json:"selected_option"`
}

type UpdateAnswerDTO struct {
	SelectedOption *int `json:"selected_option"`
}

type OptionCount struct {
	Option int    `json:"option"`
	Text   string `json:"text"`
	Count  int64  `json:"count"`
}

// StatsResponse is the answer distribution for a single question.
type StatsResponse struct {
	QuestionID int64         `json:"question_id"`
	Total      int64         `json:"total"`
	Correct    int64         `json:"correct"`
	Options    []OptionCount `json:"options"`
}
