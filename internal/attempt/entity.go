package attempt

import "github.com/saulo-duarte/quizard-lambda/internal/query"

type QuizAttempt struct {
	query.Base
	QuizID     int64 `gorm:"not null;index" json:"quiz_id"`
	UserID     int64 `gorm:"not null;index" json:"user_id"`
	Score      int64 `gorm:"not null;default:0" json:"score"`
	IsFinished bool  `gorm:"not null;default:false" json:"is_finished"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
