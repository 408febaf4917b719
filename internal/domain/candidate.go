package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// DesiredPositionOptions is the fixed multi-select offered on the intake form.
var DesiredPositionOptions = []string{
	"Software Engineer",
	"Data Scientist",
	"Frontend Developer",
	"Backend Developer",
	"Full Stack Developer",
	"DevOps Engineer",
	"Machine Learning Engineer",
	"QA Engineer",
}

// CandidateProfile is written once, after the intake submission validates in
// full. TechResponses is the only field appended to afterwards.
type CandidateProfile struct {
	FullName         string                   `json:"full_name"`
	Email            string                   `json:"email"`
	PhoneNumber      string                   `json:"phone_number"`
	YearsExperience  int                      `json:"years_experience"`
	DesiredPositions []string                 `json:"desired_positions"`
	CurrentLocation  string                   `json:"current_location"`
	TechStack        []string                 `json:"tech_stack"`
	TechResponses    map[string]*TechResponse `json:"tech_responses,omitempty"`
}

// MarshalJSON emits tech_responses in assessment order. encoding/json sorts
// map keys alphabetically, which would scramble the order the technologies
// were actually assessed in.
func (p *CandidateProfile) MarshalJSON() ([]byte, error) {
	type profileAlias CandidateProfile
	out := struct {
		*profileAlias
		TechResponses json.RawMessage `json:"tech_responses,omitempty"`
	}{profileAlias: (*profileAlias)(p)}

	if len(p.TechResponses) > 0 {
		var buf bytes.Buffer
		buf.WriteByte('{')
		first := true
		for _, tech := range p.TechStack {
			resp, ok := p.TechResponses[tech]
			if !ok {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false

			key, err := json.Marshal(tech)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := json.Marshal(resp)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
		out.TechResponses = buf.Bytes()
	}

	return json.Marshal(out)
}

// TechResponse pairs the questions asked for one technology with the answers
// given, in order. Both slices always have the same length.
type TechResponse struct {
	Questions []string `json:"questions"`
	Answers   []string `json:"answers"`
}

// IntakeSubmission carries the raw intake form fields. TechStack arrives as
// the comma-separated string the candidate typed.
type IntakeSubmission struct {
	FullName         string   `json:"full_name" validate:"required,notblank"`
	Email            string   `json:"email" validate:"required,intake_email"`
	PhoneNumber      string   `json:"phone_number" validate:"required,notblank"`
	YearsExperience  int      `json:"years_experience" validate:"gte=0,lte=50"`
	DesiredPositions []string `json:"desired_positions" validate:"required,min=1,dive,valid_position"`
	CurrentLocation  string   `json:"current_location" validate:"required,notblank"`
	TechStack        string   `json:"tech_stack" validate:"required,notblank"`
}

// Profile derives the CandidateProfile persisted at intake, including the
// ordered tech stack parsed from the raw comma-separated string.
func (in *IntakeSubmission) Profile() *CandidateProfile {
	return &CandidateProfile{
		FullName:         in.FullName,
		Email:            in.Email,
		PhoneNumber:      in.PhoneNumber,
		YearsExperience:  in.YearsExperience,
		DesiredPositions: in.DesiredPositions,
		CurrentLocation:  in.CurrentLocation,
		TechStack:        ParseTechStack(in.TechStack),
	}
}

// ParseTechStack splits a comma-separated technology list, trims whitespace,
// and drops empty segments, preserving order.
func ParseTechStack(raw string) []string {
	parts := strings.Split(raw, ",")
	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		if tech := strings.TrimSpace(part); tech != "" {
			stack = append(stack, tech)
		}
	}
	return stack
}
