package answer

import "github.com/saulo-duarte/quizard-lambda/internal/query"

type QuizAnswer struct {
	query.Base
	QuizID         int64 `gorm:"not null;index" json:"quiz_id"`
	AttemptID      int64 `gorm:"not null;uniqueIndex:idx_answer_attempt_question" json:"attempt_id"`
	QuestionID     int64 `gorm:"not null;uniqueIndex:idx_answer_attempt_question;index" json:"question_id"`
	UserID         int64 `gorm:"not null;index" json:"user_id"`
	SelectedOption int   `gorm:"not null" json:"selected_option"`
	IsCorrect      bool  `gorm:"not null;default:false" json:"is_correct"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
