package attempt

type CreateAttemptDTO struct {
	QuizID int64 `json:"quiz_id"`
}
