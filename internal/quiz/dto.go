package quiz

type QuestionInput struct {
	Text          string   `json:"text"`
	AnimationID   int64    `json:"animation_id"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

type CreateQuizDTO struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CategoryID  int64           `json:"category_id"`
	TypeID      int64           `json:"type_id"`
	AnimationID int64           `json:"animation_id"`
	Questions   []QuestionInput `json:"questions"`
}

type UpdateQuizDTO struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	CategoryID     *int64   `json:"category_id"`
	TypeID         *int64   `json:"type_id"`
	AnimationID    *int64   `json:"animation_id"`
	QuestionsOrder *[]int64 `json:"questions_order"`
}

type UpdateQuestionDTO struct {
	Text          *string   `json:"text"`
	AnimationID   *int64    `json:"animation_id"`
	Options       *[]string `json:"options"`
	CorrectOption *int      `json:"correct_option"`
}
