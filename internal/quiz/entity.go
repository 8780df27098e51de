package quiz

import (
	"sort"

	"gorm.io/datatypes"

	"github.com/saulo-duarte/quizard-lambda/internal/query"
)

type Quiz struct {
	query.Base
	Title          string                     `gorm:"not null" json:"title"`
	Description    string                     `json:"description"`
	CreatorID      int64                      `gorm:"not null;index" json:"creator_id"`
	CategoryID     int64                      `gorm:"index" json:"category_id"`
	TypeID         int64                      `json:"type_id"`
	AnimationID    int64                      `json:"animation_id"`
	QuestionsOrder datatypes.JSONSlice[int64] `json:"questions_order"`
	NumAttempts    int64                      `gorm:"not null;default:0" json:"num_attempts"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID;references:ID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	query.Base
	QuizID        int64                       `gorm:"not null;index" json:"quiz_id"`
	Text          string                      `gorm:"type:text;not null" json:"text"`
	AnimationID   int64                       `json:"animation_id"`
	Options       datatypes.JSONSlice[string] `gorm:"not null" json:"options"`
	CorrectOption int                         `gorm:"not null" json:"correct_option"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// Ordered returns the quiz questions sorted by QuestionsOrder. Questions
// missing from the order keep their insertion order at the end.
func (q *Quiz) Ordered() []QuizQuestion {
	pos := make(map[int64]int, len(q.QuestionsOrder))
	for i, id := range q.QuestionsOrder {
		pos[id] = i
	}
	rank := func(qq QuizQuestion) int {
		if p, ok := pos[qq.ID]; ok {
			return p
		}
		return len(pos)
	}

	out := append([]QuizQuestion(nil), q.Questions...)
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i]) < rank(out[j])
	})
	return out
}
