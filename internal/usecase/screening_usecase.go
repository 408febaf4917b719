package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-screening-backend/internal/domain"
	"go-screening-backend/pkg/apperror"
	"go-screening-backend/pkg/questions"
	"go-screening-backend/pkg/validation"
)

// Fixed conversational copy. The presentation layer renders these verbatim.
const (
	GreetingMessage = "Welcome to TalentScout! I'm your AI-powered hiring assistant here to help you " +
		"through the technical screening process. I'll collect some basic information about you and " +
		"then assess your technical skills through relevant questions based on your tech stack. " +
		"Let's get started!"

	ThankYouMessage = "Thank you for your time! Your responses have been recorded. " +
		"Our hiring team will review your information and get back to you soon. Good luck!"

	FormNoticeMessage = "I'm here to help with your hiring process. Please use the forms to provide information."

	intakePrompt     = "Please fill in the candidate information form."
	assessmentPrompt = "Please answer the questions for each technology in your stack."
)

// ExitKeywords end the interaction for the current turn when any of them
// appears, case-insensitively, anywhere in a free-text message.
var ExitKeywords = []string{"exit", "quit", "bye", "goodbye", "stop"}

type screeningUsecase struct {
	sessions  domain.SessionRepository
	questions *questions.Service
	validate  *validator.Validate
}

func NewScreeningUsecase(sessions domain.SessionRepository, qs *questions.Service, validate *validator.Validate) domain.ScreeningUsecase {
	return &screeningUsecase{
		sessions:  sessions,
		questions: qs,
		validate:  validate,
	}
}

func (u *screeningUsecase) Overview(ctx context.Context, s *domain.SessionState) *domain.Overview {
	overview := &domain.Overview{Stage: s.Stage}

	switch s.Stage {
	case domain.StageGreeting:
		overview.Message = GreetingMessage
	case domain.StageDataCollection:
		overview.Message = intakePrompt
		overview.PositionOptions = domain.DesiredPositionOptions
	case domain.StageTechnicalAssessment:
		overview.Message = assessmentPrompt
	case domain.StageCompletion:
		overview.Message = ThankYouMessage
	}

	return overview
}

// Begin moves greeting to data_collection. Explicit confirmation is the only
// trigger for this transition.
func (u *screeningUsecase) Begin(ctx context.Context, s *domain.SessionState) error {
	if s.Stage != domain.StageGreeting {
		return apperror.Conflict("Screening has already started")
	}

	s.Stage = domain.StageDataCollection
	s.Record(domain.RoleSystem, "Candidate confirmed readiness to begin")
	return u.sessions.Save(ctx, s)
}

// SubmitIntake validates the full submission before anything is persisted.
// A rejected submission leaves the stage and the session untouched.
func (u *screeningUsecase) SubmitIntake(ctx context.Context, s *domain.SessionState, in *domain.IntakeSubmission) error {
	if s.Stage != domain.StageDataCollection {
		return apperror.Conflict("Candidate information is not being collected right now")
	}

	if err := u.validate.Struct(in); err != nil {
		return apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	profile := in.Profile()
	if len(profile.TechStack) == 0 {
		// A blank-only tech stack would leave the assessment with nothing
		// to iterate over, so it is rejected here rather than later.
		return apperror.BadRequest("Tech Stack must list at least one technology")
	}

	s.Candidate = profile
	s.TechCursor = 0
	s.Stage = domain.StageTechnicalAssessment
	s.Record(domain.RoleSystem, "Candidate completed basic information form")
	return u.sessions.Save(ctx, s)
}

// CurrentAssessment returns the question set for the technology at the
// cursor, generating it on first access and never regenerating it within
// the session.
func (u *screeningUsecase) CurrentAssessment(ctx context.Context, s *domain.SessionState) (*domain.Assessment, error) {
	if s.Stage != domain.StageTechnicalAssessment {
		return nil, apperror.Conflict("The technical assessment is not in progress")
	}
	if s.Candidate == nil || len(s.Candidate.TechStack) == 0 {
		return nil, apperror.UnprocessableEntity("No technologies specified for assessment")
	}

	tech, ok := s.CurrentTechnology()
	if !ok {
		return nil, apperror.Conflict("All technologies have already been assessed")
	}

	total := len(s.Candidate.TechStack)
	if cached, ok := s.TechQuestions[tech]; ok {
		return &domain.Assessment{
			Technology: tech,
			Position:   s.TechCursor + 1,
			Total:      total,
			Questions:  cached,
			Source:     domain.QuestionSourceCached,
		}, nil
	}

	set := u.questions.ForTechnology(ctx, tech, s.Candidate.YearsExperience)
	s.TechQuestions[tech] = set.Questions
	s.Record(domain.RoleSystem, fmt.Sprintf("Prepared %d questions for %s", len(set.Questions), tech))
	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.Assessment{
		Technology: tech,
		Position:   s.TechCursor + 1,
		Total:      total,
		Questions:  set.Questions,
		Source:     string(set.Source),
		Warning:    set.Warning,
	}, nil
}

// SubmitAnswers records the responses for the current technology and moves
// the cursor forward, completing the screening when the stack is exhausted.
// Any empty answer rejects the whole submission.
func (u *screeningUsecase) SubmitAnswers(ctx context.Context, s *domain.SessionState, answers []string) (*domain.AnswerOutcome, error) {
	if s.Stage != domain.StageTechnicalAssessment {
		return nil, apperror.Conflict("The technical assessment is not in progress")
	}
	if s.Candidate == nil || len(s.Candidate.TechStack) == 0 {
		return nil, apperror.UnprocessableEntity("No technologies specified for assessment")
	}

	tech, ok := s.CurrentTechnology()
	if !ok {
		return nil, apperror.Conflict("All technologies have already been assessed")
	}

	asked, ok := s.TechQuestions[tech]
	if !ok {
		return nil, apperror.Conflict(fmt.Sprintf("Questions for %s have not been issued yet", tech))
	}
	if len(answers) != len(asked) {
		return nil, apperror.BadRequest(fmt.Sprintf("Expected %d answers, got %d", len(asked), len(answers)))
	}
	for i, answer := range answers {
		if answer == "" {
			return nil, apperror.BadRequest(fmt.Sprintf("Please answer all questions before submitting (question %d is empty)", i+1))
		}
	}

	if s.Candidate.TechResponses == nil {
		s.Candidate.TechResponses = make(map[string]*domain.TechResponse)
	}
	s.Candidate.TechResponses[tech] = &domain.TechResponse{
		Questions: asked,
		Answers:   answers,
	}
	s.TechCursor++
	s.Record(domain.RoleSystem, fmt.Sprintf("Candidate answered %d questions for %s", len(answers), tech))

	outcome := &domain.AnswerOutcome{
		Remaining: len(s.Candidate.TechStack) - s.TechCursor,
	}
	if s.TechCursor >= len(s.Candidate.TechStack) {
		s.Stage = domain.StageCompletion
		s.Record(domain.RoleSystem, "Technical assessment complete")
	} else {
		outcome.NextTechnology = s.Candidate.TechStack[s.TechCursor]
	}
	outcome.Stage = s.Stage

	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, apperror.Internal(err)
	}
	return outcome, nil
}

// HandleMessage processes the free-text side channel. Exit keywords end the
// interaction for this turn with the closing message; anything else gets the
// form notice. Neither mutates the stage, and the message is always logged.
func (u *screeningUsecase) HandleMessage(ctx context.Context, s *domain.SessionState, message string) (*domain.MessageReply, error) {
	s.Record(domain.RoleUser, message)

	reply := &domain.MessageReply{Reply: FormNoticeMessage}
	lower := strings.ToLower(message)
	for _, keyword := range ExitKeywords {
		if strings.Contains(lower, keyword) {
			reply.Reply = ThankYouMessage
			reply.Exited = true
			break
		}
	}

	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, apperror.Internal(err)
	}
	return reply, nil
}

// Summary exposes the full collected profile once the screening completed.
func (u *screeningUsecase) Summary(ctx context.Context, s *domain.SessionState) (*domain.CandidateProfile, error) {
	if s.Stage != domain.StageCompletion {
		return nil, apperror.Conflict("The screening is not complete yet")
	}
	return s.Candidate, nil
}

// Reset tears the whole session state down and returns to the greeting.
func (u *screeningUsecase) Reset(ctx context.Context, s *domain.SessionState) error {
	s.Reset()
	return u.sessions.Save(ctx, s)
}
