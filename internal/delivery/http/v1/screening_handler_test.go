package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go-screening-backend/internal/delivery/http/middleware"
	v1 "go-screening-backend/internal/delivery/http/v1"
	"go-screening-backend/internal/repository/memory"
	"go-screening-backend/internal/usecase"
	"go-screening-backend/pkg/logger"
	"go-screening-backend/pkg/questions"
	"go-screening-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Warning string          `json:"warning"`
}

// client keeps the session cookie across requests, standing in for one
// candidate's browser.
type client struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newClient(t *testing.T) *client {
	return newClientWithGenerator(t, nil)
}

func newClientWithGenerator(t *testing.T, gen questions.Generator) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init()

	validate := validator.New()
	validation.RegisterValidators(validate)

	sessions := memory.NewSessionRepository(0)
	uc := usecase.NewScreeningUsecase(sessions, questions.NewService(gen, nil), validate)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	group := router.Group("/v1/screening")
	group.Use(middleware.SessionMiddleware(sessions))
	noopLimiter := func(c *gin.Context) { c.Next() }
	v1.NewScreeningHandler(group, uc, noopLimiter)

	return &client{t: t, router: router}
}

func (cl *client) do(method, path, body string) (int, *envelope) {
	cl.t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}

	rec := httptest.NewRecorder()
	cl.router.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			cl.cookie = cookie
		}
	}

	var env envelope
	require.NoError(cl.t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, &env
}

const intakeBody = `{
	"full_name": "Jane Doe",
	"email": "jane@example.com",
	"phone_number": "+1 (555) 123-4567",
	"years_experience": 2,
	"desired_positions": ["Backend Developer"],
	"current_location": "Berlin",
	"tech_stack": "Python"
}`

func TestScreeningFlowOverHTTP(t *testing.T) {
	cl := newClient(t)

	code, env := cl.do(http.MethodGet, "/v1/screening", "")
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, cl.cookie, "first request must set the session cookie")
	var overview struct {
		Stage   string `json:"stage"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &overview))
	assert.Equal(t, "greeting", overview.Stage)
	assert.Contains(t, overview.Message, "Welcome to TalentScout")

	code, _ = cl.do(http.MethodPost, "/v1/screening/begin", "")
	require.Equal(t, http.StatusOK, code)

	// Repeating the confirmation conflicts
	code, env = cl.do(http.MethodPost, "/v1/screening/begin", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Success)

	code, _ = cl.do(http.MethodPost, "/v1/screening/intake", intakeBody)
	require.Equal(t, http.StatusOK, code)

	code, env = cl.do(http.MethodGet, "/v1/screening/assessment", "")
	require.Equal(t, http.StatusOK, code)
	var assessment struct {
		Technology string   `json:"technology"`
		Questions  []string `json:"questions"`
		Source     string   `json:"source"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &assessment))
	assert.Equal(t, "Python", assessment.Technology)
	assert.Equal(t, "fallback", assessment.Source)
	require.Len(t, assessment.Questions, 4)

	code, env = cl.do(http.MethodPost, "/v1/screening/assessment/answers",
		`{"answers": ["A1", "A2", "A3", "A4"]}`)
	require.Equal(t, http.StatusOK, code)
	var outcome struct {
		Stage string `json:"stage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &outcome))
	assert.Equal(t, "completion", outcome.Stage)

	code, env = cl.do(http.MethodGet, "/v1/screening/summary", "")
	require.Equal(t, http.StatusOK, code)
	var profile struct {
		FullName      string `json:"full_name"`
		TechResponses map[string]struct {
			Answers []string `json:"answers"`
		} `json:"tech_responses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "Jane Doe", profile.FullName)
	require.Contains(t, profile.TechResponses, "Python")
	assert.Len(t, profile.TechResponses["Python"].Answers, 4)
}

func TestScreeningEndpointErrors(t *testing.T) {
	cl := newClient(t)

	t.Run("Should reject intake before confirmation", func(t *testing.T) {
		code, env := cl.do(http.MethodPost, "/v1/screening/intake", intakeBody)
		assert.Equal(t, http.StatusConflict, code)
		assert.False(t, env.Success)
	})

	t.Run("Should reject an invalid intake with field messages", func(t *testing.T) {
		code, _ := cl.do(http.MethodPost, "/v1/screening/begin", "")
		require.Equal(t, http.StatusOK, code)

		bad := strings.Replace(intakeBody, "jane@example.com", "not-an-email", 1)
		code, env := cl.do(http.MethodPost, "/v1/screening/intake", bad)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, env.Message, "Email")
	})

	t.Run("Should reject a malformed body", func(t *testing.T) {
		code, env := cl.do(http.MethodPost, "/v1/screening/messages", `{"message":`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, env.Success)
	})

	t.Run("Should reject the summary before completion", func(t *testing.T) {
		code, _ := cl.do(http.MethodGet, "/v1/screening/summary", "")
		assert.Equal(t, http.StatusConflict, code)
	})
}

func TestMessageSideChannel(t *testing.T) {
	cl := newClient(t)

	code, env := cl.do(http.MethodPost, "/v1/screening/messages", `{"message": "Goodbye!"}`)
	require.Equal(t, http.StatusOK, code)
	var reply struct {
		Reply  string `json:"reply"`
		Exited bool   `json:"exited"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reply))
	assert.True(t, reply.Exited)
	assert.Contains(t, reply.Reply, "Thank you for your time")

	// The stage is untouched by the side channel
	code, env = cl.do(http.MethodGet, "/v1/screening", "")
	require.Equal(t, http.StatusOK, code)
	var overview struct {
		Stage string `json:"stage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &overview))
	assert.Equal(t, "greeting", overview.Stage)

	// And the exchange is in the history
	code, env = cl.do(http.MethodGet, "/v1/screening/history", "")
	require.Equal(t, http.StatusOK, code)
	var history []struct {
		Role    string `json:"role"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.NotEmpty(t, history)
	assert.Equal(t, "Goodbye!", history[0].Message)
}

// slowGenerator is slow enough for same-session requests to overlap, and
// counts how many generation calls actually fire.
type slowGenerator struct {
	calls atomic.Int32
}

func (g *slowGenerator) Questions(ctx context.Context, technology string, yearsExperience int) ([]string, error) {
	g.calls.Add(1)
	time.Sleep(100 * time.Millisecond)
	return []string{"Q1", "Q2", "Q3"}, nil
}

// Concurrent requests replaying the same session cookie must serialize: one
// generation event per technology, every caller seeing the same set, and no
// concurrent mutation of the session state.
func TestConcurrentAssessmentRequests(t *testing.T) {
	gen := &slowGenerator{}
	cl := newClientWithGenerator(t, gen)

	code, _ := cl.do(http.MethodPost, "/v1/screening/begin", "")
	require.Equal(t, http.StatusOK, code)
	code, _ = cl.do(http.MethodPost, "/v1/screening/intake", intakeBody)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, cl.cookie)

	const workers = 4
	results := make(chan []string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodGet, "/v1/screening/assessment", nil)
			req.AddCookie(cl.cookie)
			rec := httptest.NewRecorder()
			cl.router.ServeHTTP(rec, req)

			var env envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				results <- nil
				return
			}
			var assessment struct {
				Questions []string `json:"questions"`
			}
			if err := json.Unmarshal(env.Data, &assessment); err != nil {
				results <- nil
				return
			}
			results <- assessment.Questions
		}()
	}
	wg.Wait()
	close(results)

	assert.Equal(t, int32(1), gen.calls.Load(), "question set must be generated once per technology")
	for qs := range results {
		assert.Equal(t, []string{"Q1", "Q2", "Q3"}, qs)
	}
}

func TestResetReturnsToGreeting(t *testing.T) {
	cl := newClient(t)

	code, _ := cl.do(http.MethodPost, "/v1/screening/begin", "")
	require.Equal(t, http.StatusOK, code)

	code, env := cl.do(http.MethodDelete, "/v1/screening", "")
	require.Equal(t, http.StatusOK, code)
	var overview struct {
		Stage string `json:"stage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &overview))
	assert.Equal(t, "greeting", overview.Stage)
}
