// Package questions sources technical interview questions for a technology,
// preferring OpenAI generation and falling back to a static table so the
// assessment can always proceed with some question set.
package questions

import (
	"context"
	"log/slog"
)

// Source identifies where a question set came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// FallbackWarning is the non-fatal notice surfaced when generation failed
// and the static table was used instead.
const FallbackWarning = "Could not generate questions with OpenAI; using the standard question set instead."

// Set is the outcome of sourcing questions for one technology.
type Set struct {
	Technology string
	Questions  []string
	Source     Source
	// Warning is set only when a configured generator failed; a missing
	// credential selects the fallback silently.
	Warning string
}

// Generator produces 1-5 interview questions for a technology and
// experience level.
type Generator interface {
	Questions(ctx context.Context, technology string, yearsExperience int) ([]string, error)
}

// Service wraps an optional Generator with the static fallback table.
// A nil generator means no credential was configured.
type Service struct {
	generator Generator
	log       *slog.Logger
}

func NewService(generator Generator, log *slog.Logger) *Service {
	return &Service{
		generator: generator,
		log:       log,
	}
}

// ForTechnology never fails. Any generation error, including timeouts, is
// treated the same as a missing credential and selects the fallback table.
func (s *Service) ForTechnology(ctx context.Context, technology string, yearsExperience int) Set {
	if s.generator == nil {
		return Set{
			Technology: technology,
			Questions:  FallbackQuestions(technology),
			Source:     SourceFallback,
		}
	}

	generated, err := s.generator.Questions(ctx, technology, yearsExperience)
	if err != nil {
		if s.log != nil {
			s.log.Warn("question generation failed, using fallback",
				"technology", technology,
				"error", err,
			)
		}
		return Set{
			Technology: technology,
			Questions:  FallbackQuestions(technology),
			Source:     SourceFallback,
			Warning:    FallbackWarning,
		}
	}

	return Set{
		Technology: technology,
		Questions:  generated,
		Source:     SourceGenerated,
	}
}
