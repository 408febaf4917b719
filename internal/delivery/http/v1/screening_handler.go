package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-screening-backend/internal/delivery/http/middleware"
	"go-screening-backend/internal/delivery/http/response"
	"go-screening-backend/internal/domain"
)

type ScreeningHandler struct {
	screeningUC domain.ScreeningUsecase
}

// MessageRequest is the free-text side channel payload.
type MessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// AnswersRequest carries one answer per question, in question order.
type AnswersRequest struct {
	Answers []string `json:"answers" binding:"required"`
}

func NewScreeningHandler(r *gin.RouterGroup, screeningUC domain.ScreeningUsecase, generationLimiter gin.HandlerFunc) {
	handler := &ScreeningHandler{screeningUC: screeningUC}

	r.GET("", handler.Overview)
	r.DELETE("", handler.Reset)
	r.POST("/begin", handler.Begin)
	r.POST("/intake", handler.SubmitIntake)
	r.GET("/assessment", generationLimiter, handler.Assessment)
	r.POST("/assessment/answers", handler.SubmitAnswers)
	r.POST("/messages", handler.Message)
	r.GET("/history", handler.History)
	r.GET("/summary", handler.Summary)
}

// Overview godoc
// @Summary      Current screening state
// @Description  Stage of the caller's session plus the copy to render for it
// @Tags         screening
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Overview}
// @Router       /screening [get]
func (h *ScreeningHandler) Overview(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		response.Error(c, http.StatusInternalServerError, "No screening session", nil)
		return
	}

	overview := h.screeningUC.Overview(c.Request.Context(), session)
	response.Success(c, http.StatusOK, "Screening state", overview)
}

// Begin godoc
// @Summary      Confirm readiness
// @Description  Moves the session from greeting to the intake form
// @Tags         screening
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Overview}
// @Failure      409  {object}  response.Response
// @Router       /screening/begin [post]
func (h *ScreeningHandler) Begin(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		response.Error(c, http.StatusInternalServerError, "No screening session", nil)
		return
	}

	if err := h.screeningUC.Begin(c.Request.Context(), session); err != nil {
		c.Error(err)
		return
	}

	overview := h.screeningUC.Overview(c.Request.Context(), session)
	response.Success(c, http.StatusOK, "Let's begin", overview)
}

// SubmitIntake godoc
// @Summary      Submit the candidate information form
// @Description  Validates and persists the profile, then starts the technical assessment
// @Tags         screening
// @Accept       json
// @Produce      json
// @Param        request  body      domain.IntakeSubmission  true  "Intake form fields"
// @Success      200      {object}  response.Response{data=domain.Overview}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /screening/intake [post]
func (h *ScreeningHandler) SubmitIntake(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		response.Error(c, http.StatusInternalServerError, "No screening session", nil)
		return
	}

	var in domain.IntakeSubmission
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.screeningUC.SubmitIntake(c.Request.Context(), session, &in); err != nil {
		c.Error(err)
		return
	}

	overview := h.screeningUC.Overview(c.Request.Context(), session)
	response.Success(c, http.StatusOK, "Information recorded", overview)
}

// Assessment godoc
// @Summary      Questions for the technology under assessment
// @Description  Generates the question set on first access and memoizes it for the session
// @Tags         screening
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Assessment}
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /screening/assessment [get]
func (h *ScreeningHandler) Assessment(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		response.Error(c, http.StatusInternalServerError, "No screening session", nil)
		return
	}

	assessment, err := h.screeningUC.CurrentAssessment(c.Request.Context(), session)
	if err != nil {
		c.Error(err)
		return
	}

	if assessment.Warning != "" {
		response.SuccessWithWarning(c, http.StatusOK, "Technical assessment", assessment.Warning, assessment)
		return
	}
	response.Success(c, http.StatusOK, "Technical assessment", assessment)
}

// SubmitAnswers godoc
// @Summary      Submit answers for the current technology
// @Description  All questions must be answered; the cursor then moves to the next technology or the screening completes
// @Tags         screening
// @Accept       json
// @Produce      json
// @Param        request  body      AnswersRequest  true  "One answer per question, in order"
// @Success      200      {object}  response.Response{data=domain.AnswerOutcome}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /screening/assessment/answers [post]
func (h *ScreeningHandler) SubmitAnswers(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		response.Error(c, http.StatusInternalServerError, "No screening session", nil)
		return
	}

	var req AnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	outcome, err := h.screeningUC.SubmitAnswers(c.Request.Context(), session, req.Answers)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Answers recorded", outcome)
}

// Message godoc
// @Summary      Free-text side channel
// @Description  Exit keywords end the interaction for this turn; anything else gets a notice to use the forms
// @Tags         screening
// @Accept       json
// @Produce      json
// @Param        request  body      MessageRequest  true  "Candidate message"
// @Success      200      {object}  response.Response{data=domain.MessageReply}
// @Failure      400      {object}  response.Response
// @Router       /screening/messages [post]
func (h *ScreeningHandler) Message(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		response.Error(c, http.StatusInternalServerError, "No screening session", nil)
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	reply, err := h.screeningUC.HandleMessage(c.Request.Context(), session, req.Message)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Message received", reply)
}

// History godoc
// @Summary      Conversation log
// @Tags         screening
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ConversationEntry}
// @Router       /screening/history [get]
func (h *ScreeningHandler) History(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		response.Error(c, http.StatusInternalServerError, "No screening session", nil)
		return
	}

	response.Success(c, http.StatusOK, "Conversation history", session.History)
}

// Summary godoc
// @Summary      Completed screening summary
// @Description  The full candidate profile including every technology's questions and answers
// @Tags         screening
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      409  {object}  response.Response
// @Router       /screening/summary [get]
func (h *ScreeningHandler) Summary(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		response.Error(c, http.StatusInternalServerError, "No screening session", nil)
		return
	}

	profile, err := h.screeningUC.Summary(c.Request.Context(), session)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Screening summary", profile)
}

// Reset godoc
// @Summary      Restart the screening
// @Description  Clears all session state and returns to the greeting stage
// @Tags         screening
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Overview}
// @Router       /screening [delete]
func (h *ScreeningHandler) Reset(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		response.Error(c, http.StatusInternalServerError, "No screening session", nil)
		return
	}

	if err := h.screeningUC.Reset(c.Request.Context(), session); err != nil {
		c.Error(err)
		return
	}

	overview := h.screeningUC.Overview(c.Request.Context(), session)
	response.Success(c, http.StatusOK, "Session reset", overview)
}
