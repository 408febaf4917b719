package domain

import "context"

// Question-set provenance reported on assessment views.
const (
	QuestionSourceGenerated = "generated"
	QuestionSourceFallback  = "fallback"
	QuestionSourceCached    = "cached"
)

// Overview is the stage-appropriate view of a session for the presentation
// layer to render.
type Overview struct {
	Stage           Stage    `json:"stage"`
	Message         string   `json:"message"`
	PositionOptions []string `json:"desired_position_options,omitempty"`
}

// Assessment describes the current technology under assessment and its
// question set. Warning carries the non-fatal notice shown when the remote
// generation failed and the fallback table was used.
type Assessment struct {
	Technology string   `json:"technology"`
	Position   int      `json:"position"`
	Total      int      `json:"total"`
	Questions  []string `json:"questions"`
	Source     string   `json:"source"`
	Warning    string   `json:"-"`
}

// AnswerOutcome reports where the flow landed after an answer submission.
type AnswerOutcome struct {
	Stage          Stage  `json:"stage"`
	NextTechnology string `json:"next_technology,omitempty"`
	Remaining      int    `json:"remaining"`
}

// MessageReply is the response to a free-text message outside the forms.
// Exited is set when the message matched an exit keyword; the stage is left
// untouched either way.
type MessageReply struct {
	Reply  string `json:"reply"`
	Exited bool   `json:"exited"`
}

type ScreeningUsecase interface {
	Overview(ctx context.Context, session *SessionState) *Overview
	Begin(ctx context.Context, session *SessionState) error
	SubmitIntake(ctx context.Context, session *SessionState, in *IntakeSubmission) error
	CurrentAssessment(ctx context.Context, session *SessionState) (*Assessment, error)
	SubmitAnswers(ctx context.Context, session *SessionState, answers []string) (*AnswerOutcome, error)
	HandleMessage(ctx context.Context, session *SessionState, message string) (*MessageReply, error)
	Summary(ctx context.Context, session *SessionState) (*CandidateProfile, error)
	Reset(ctx context.Context, session *SessionState) error
}
