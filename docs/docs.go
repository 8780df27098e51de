// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Log in with email and password", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/user.LoginDTO"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/refresh": {
            "post": {"tags": ["auth"], "summary": "Rotate a refresh token", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/user.RefreshDTO"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/users": {
            "get": {"tags": ["users"], "summary": "Get one user or a page of users", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "post": {"tags": ["users"], "summary": "Register a user", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/user.CreateUserDTO"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/quizzes": {
            "get": {"tags": ["quizzes"], "summary": "Get one quiz or a page of quizzes", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "post": {"tags": ["quizzes"], "summary": "Create a quiz with its questions", "security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/quiz.CreateQuizDTO"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/quizzes/generate": {
            "post": {"tags": ["quizzes"], "summary": "Draft quiz questions with Gemini", "security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/aiquiz.GenerateRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/attempts": {
            "post": {"tags": ["attempts"], "summary": "Start an attempt at a quiz", "security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/answers": {
            "post": {"tags": ["answers"], "summary": "Answer a question of one of your attempts", "security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/answer.CreateAnswerDTO"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}}
        },
        "/answers/stats": {
            "get": {"tags": ["answers"], "summary": "Answer distribution for a question", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "question_id", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        }
    },
    "definitions": {
        "user.LoginDTO": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "user.RefreshDTO": {"type": "object", "properties": {"refresh_token": {"type": "string"}}},
        "user.CreateUserDTO": {"type": "object", "properties": {"full_name": {"type": "string"}, "display_name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}},
        "quiz.QuestionInput": {"type": "object", "properties": {"text": {"type": "string"}, "animation_id": {"type": "integer"}, "options": {"type": "array", "items": {"type": "string"}}, "correct_option": {"type": "integer"}}},
        "quiz.CreateQuizDTO": {"type": "object", "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "category_id": {"type": "integer"}, "type_id": {"type": "integer"}, "animation_id": {"type": "integer"}, "questions": {"type": "array", "items": {"$ref": "#/definitions/quiz.QuestionInput"}}}},
        "aiquiz.GenerateRequest": {"type": "object", "properties": {"topic": {"type": "string"}, "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]}, "count": {"type": "integer"}, "context": {"type": "string"}}},
        "answer.CreateAnswerDTO": {"type": "object", "properties": {"attempt_id": {"type": "integer"}, "question_id": {"type": "integer"}, "selected_option": {"type": "integer"}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Quizard API",
	Description:      "Quizzes, attempts and answers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
