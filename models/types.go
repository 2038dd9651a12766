package models

import "time"

// OptionOther is the sentinel option key for free-text selections.
// Checkbox submissions carry it inline; standalone free-text answers
// land in other_responses and are folded in at aggregation time.
const OptionOther = "OTHER"

// Request types

type CreateUserRequest struct {
	UserUUID    string `json:"user_uuid" validate:"required,uuid"`
	YearOfBirth int    `json:"year_of_birth" validate:"required"`
}

type VoteRequest struct {
	QuestionCode string `json:"question_code" validate:"required"`
	OptionSelect string `json:"option_select" validate:"required"`
	UserUUID     string `json:"user_uuid" validate:"required"`
}

type CheckboxVoteRequest struct {
	QuestionCode  string   `json:"question_code" validate:"required"`
	OptionSelects []string `json:"option_selects" validate:"required,min=1"`
	UserUUID      string   `json:"user_uuid" validate:"required"`
	OtherText     string   `json:"other_text"`
}

type OtherRequest struct {
	QuestionCode string `json:"question_code" validate:"required"`
	UserUUID     string `json:"user_uuid" validate:"required"`
	OtherText    string `json:"other_text" validate:"required"`
}

// Response types

type MessageResponse struct {
	Message  string `json:"message"`
	UserUUID string `json:"user_uuid,omitempty"`
}

// OptionCount is one entry of a question tally. Count is fractional:
// each checkbox selection contributes 1/k of a vote.
type OptionCount struct {
	OptionSelect string  `json:"option_select"`
	Count        float64 `json:"count"`
}

type ResultsResponse struct {
	QuestionCode string        `json:"question_code"`
	Results      []OptionCount `json:"results"`
}

type UsersResponse struct {
	Users []User `json:"users"`
}

// Domain types

type Category struct {
	ID               int       `json:"id"`
	CategoryName     string    `json:"category_name"`
	CategoryText     *string   `json:"category_text,omitempty"`
	DayOfWeek        *string   `json:"day_of_week,omitempty"`
	DayOfWeekText    *string   `json:"day_of_week_text,omitempty"`
	Description      *string   `json:"description,omitempty"`
	CategoryTextLong *string   `json:"category_text_long,omitempty"`
	Version          *string   `json:"version,omitempty"`
	UUID             *string   `json:"uuid,omitempty"`
	SortOrder        int       `json:"sort_order"`
	CreatedAt        time.Time `json:"created_at"`
}

type Block struct {
	ID           int       `json:"id"`
	CategoryID   int       `json:"category_id"`
	BlockNumber  int       `json:"block_number"`
	BlockCode    *string   `json:"block_code,omitempty"`
	BlockText    *string   `json:"block_text,omitempty"`
	Version      *string   `json:"version,omitempty"`
	UUID         *string   `json:"uuid,omitempty"`
	CategoryName *string   `json:"category_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Question struct {
	ID               int       `json:"id"`
	CategoryID       int       `json:"category_id"`
	QuestionCode     string    `json:"question_code"`
	QuestionNumber   int       `json:"question_number"`
	QuestionText     string    `json:"question_text"`
	CheckBox         bool      `json:"check_box"`
	MaxSelect        int       `json:"max_select"`
	BlockNumber      int       `json:"block_number"`
	BlockText        *string   `json:"block_text,omitempty"`
	IsStartQuestion  bool      `json:"is_start_question"`
	ParentQuestionID *int      `json:"parent_question_id,omitempty"`
	ColorCode        *string   `json:"color_code,omitempty"`
	Version          *string   `json:"version,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type Option struct {
	ID              int       `json:"id"`
	CategoryID      int       `json:"category_id"`
	QuestionCode    string    `json:"question_code"`
	QuestionNumber  int       `json:"question_number"`
	QuestionText    *string   `json:"question_text,omitempty"`
	CheckBox        bool      `json:"check_box"`
	BlockNumber     int       `json:"block_number"`
	BlockText       *string   `json:"block_text,omitempty"`
	OptionSelect    string    `json:"option_select"`
	OptionCode      string    `json:"option_code"`
	OptionText      string    `json:"option_text"`
	ResponseMessage *string   `json:"response_message,omitempty"`
	CompanionAdvice *string   `json:"companion_advice,omitempty"`
	ToneTag         *string   `json:"tone_tag,omitempty"`
	NextQuestionID  *int      `json:"next_question_id,omitempty"`
	Version         *string   `json:"version,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type User struct {
	UserUUID    string    `json:"user_uuid"`
	YearOfBirth int       `json:"year_of_birth"`
	CreatedAt   time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
