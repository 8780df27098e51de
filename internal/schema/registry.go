package schema

import "fmt"

// Registry keys follow <resource>_<read|write>, plus a few action schemas.
// The resource part matches the table name of the model.

var paginationArgs = Schema{
	"many":    isBoolean,
	"last_id": isUnsigned,
	"limit":   isLimit,
}

var userRead = Schema{
	"id":           isInteger,
	"full_name":    isText,
	"display_name": isText,
	"email":        isText,
	"password":     isReadOnly,
	"role":         {Type: String, Rules: "oneof=user moderator admin"},
	"disabled":     isBoolean,
	"created_at":   isUnsigned,
	"updated_at":   isUnsigned,
}.with(paginationArgs)

var userWrite = Schema{
	"id":           isReadOnly,
	"full_name":    isRequiredString,
	"display_name": isText,
	"email":        {Type: String, Required: true, Rules: "email,max=254"},
	"password":     isPassword,
	"role":         isReadOnly,
	"disabled":     isReadOnly,
	"created_at":   isReadOnly,
	"updated_at":   isReadOnly,
}

var userLogin = Schema{
	"email":    isRequiredString,
	"password": isPassword,
}

var tokenRefresh = Schema{
	"refresh_token": isRequiredString,
}

var tokenLogout = Schema{
	"refresh_token": isText,
}

var googleLogin = Schema{
	"code": isRequiredString,
}

var quizQuestionRead = Schema{
	"id":             isUnsigned,
	"quiz_id":        isUnsigned,
	"text":           isText,
	"animation_id":   isUnsigned,
	"options":        isReadOnly,
	"correct_option": isUnsigned,
	"created_at":     isUnsigned,
	"updated_at":     isUnsigned,
}.with(paginationArgs)

var quizQuestionWrite = Schema{
	"id":             isReadOnly,
	"quiz_id":        isReadOnly,
	"text":           isRequiredString,
	"animation_id":   isUnsigned,
	"options":        {Type: StringList, Required: true, Rules: "min=2,max=10,dive,min=1"},
	"correct_option": isRequiredUint,
	"created_at":     isReadOnly,
	"updated_at":     isReadOnly,
}

var quizRead = Schema{
	"id":           isUnsigned,
	"title":        isText,
	"description":  isText,
	"creator_id":   isUnsigned,
	"category_id":  isUnsigned,
	"type_id":      isUnsigned,
	"animation_id": isUnsigned,
	"num_attempts": isUnsigned,
	"created_at":   isUnsigned,
	"updated_at":   isUnsigned,
}.with(paginationArgs)

var quizWrite = Schema{
	"id":              isReadOnly,
	"title":           isRequiredString,
	"description":     isText,
	"creator_id":      isReadOnly,
	"category_id":     isUnsigned,
	"type_id":         isUnsigned,
	"animation_id":    isUnsigned,
	"num_attempts":    isReadOnly,
	"questions_order": {Type: IntegerList, UpdateOnly: true},
	"questions": {
		Type:       ObjectList,
		Required:   true,
		CreateOnly: true,
		Rules:      "min=1,max=100",
		Items:      quizQuestionWrite,
	},
	"created_at": isReadOnly,
	"updated_at": isReadOnly,
}

var quizGenerate = Schema{
	"topic":      {Type: String, Required: true, Rules: "min=2,max=200"},
	"difficulty": {Type: String, Rules: "oneof=easy medium hard"},
	"count":      {Type: Integer, Rules: "min=1,max=10"},
	"context":    {Type: String, Rules: "max=2000"},
}

var quizAttemptRead = Schema{
	"id":          isUnsigned,
	"quiz_id":     isUnsigned,
	"user_id":     isUnsigned,
	"score":       isInteger,
	"is_finished": isBoolean,
	"created_at":  isUnsigned,
	"updated_at":  isUnsigned,
}.with(paginationArgs)

var quizAttemptWrite = Schema{
	"id":          isReadOnly,
	"quiz_id":     {Type: Integer, Required: true, CreateOnly: true, Rules: "min=0"},
	"user_id":     isReadOnly,
	"score":       isReadOnly,
	"is_finished": isReadOnly,
	"created_at":  isReadOnly,
	"updated_at":  isReadOnly,
}

var quizAnswerRead = Schema{
	"id":              isUnsigned,
	"quiz_id":         isUnsigned,
	"attempt_id":      isUnsigned,
	"question_id":     isUnsigned,
	"user_id":         isUnsigned,
	"selected_option": isUnsigned,
	"is_correct":      isBoolean,
	"created_at":      isUnsigned,
	"updated_at":      isUnsigned,
}.with(paginationArgs)

var quizAnswerWrite = Schema{
	"id":              isReadOnly,
	"quiz_id":         isReadOnly,
	"attempt_id":      {Type: Integer, Required: true, CreateOnly: true, Rules: "min=0"},
	"question_id":     {Type: Integer, Required: true, CreateOnly: true, Rules: "min=0"},
	"user_id":         isReadOnly,
	"selected_option": isRequiredUint,
	"is_correct":      isReadOnly,
	"created_at":      isReadOnly,
	"updated_at":      isReadOnly,
}

var registry = map[string]Schema{
	"user_read":           userRead,
	"user_write":          userWrite,
	"user_login":          userLogin,
	"token_refresh":       tokenRefresh,
	"token_logout":        tokenLogout,
	"google_login":        googleLogin,
	"quiz_read":           quizRead,
	"quiz_write":          quizWrite,
	"quiz_generate":       quizGenerate,
	"quiz_question_read":  quizQuestionRead,
	"quiz_question_write": quizQuestionWrite,
	"quiz_attempt_read":   quizAttemptRead,
	"quiz_attempt_write":  quizAttemptWrite,
	"quiz_answer_read":    quizAnswerRead,
	"quiz_answer_write":   quizAnswerWrite,
}

func Lookup(name string) (Schema, bool) {
	s, ok := registry[name]
	return s, ok
}

// MustLookup is meant for route registration, where a typo is a programming error.
func MustLookup(name string) Schema {
	s, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("schema %q is not registered", name))
	}
	return s
}
