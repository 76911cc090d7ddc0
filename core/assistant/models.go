package assistant

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/myousuf-code/StudyWiseAI/core"
)

const MessageTypeStudyHelp = "study_help"

// ChatMessage is one question/answer exchange with the assistant.
type ChatMessage struct {
	ID              int             `json:"id"`
	UserID          int             `json:"user_id"`
	SessionID       uuid.UUID       `json:"session_id"`
	Message         string          `json:"message"`
	Response        string          `json:"response"`
	MessageType     string          `json:"message_type"`
	ContextData     json.RawMessage `json:"context_data"`
	ConfidenceScore float64         `json:"confidence_score"`
	Timestamp       time.Time       `json:"timestamp"` // UTC
}

type ChatRequest struct {
	Message string                 `json:"message" validate:"required,notblank,max=4000"`
	Context map[string]interface{} `json:"context"`
}

func (cr *ChatRequest) Clean() {
	cr.Message = core.CleanString(cr.Message)
}

type ChatResponse struct {
	Response    string    `json:"response"`
	Timestamp   time.Time `json:"timestamp"`
	MessageType string    `json:"message_type"`
}

// HistoryEntry is the public view of a ChatMessage.
type HistoryEntry struct {
	Message     string    `json:"message"`
	Response    string    `json:"response"`
	Timestamp   time.Time `json:"timestamp"`
	MessageType string    `json:"message_type"`
}

type QuizRequest struct {
	Topic         string `json:"topic" validate:"required,notblank,max=200"`
	Difficulty    string `json:"difficulty" validate:"required,difficulty"`
	QuestionCount int    `json:"question_count" validate:"min=0,max=20"`
}

func (qr *QuizRequest) Clean() {
	qr.Topic = core.CleanString(qr.Topic)
	qr.Difficulty = core.CleanString(qr.Difficulty, true)
	if qr.QuestionCount == 0 {
		qr.QuestionCount = DefaultQuestionCount
	}
}

type Quiz struct {
	Questions     string         `json:"questions"` // raw model text
	Parsed        []QuizQuestion `json:"parsed_questions"`
	Topic         string         `json:"topic"`
	Difficulty    string         `json:"difficulty"`
	QuestionCount int            `json:"question_count"`
}

type QuizQuestion struct {
	Number      int               `json:"number"`
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"` // letter -> text
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation"`
}
