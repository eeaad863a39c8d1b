package handler

import (
	"prepdeck/internal/domain"
	"prepdeck/internal/dto"
	"prepdeck/internal/middleware"
	"prepdeck/internal/service"
	"prepdeck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// InterviewHandler handles interview session and analytics HTTP requests.
type InterviewHandler struct {
	sessionService   service.SessionService
	analyticsService service.AnalyticsService
	resourceService  service.ResourceService
	validator        *validation.Validator
}

// NewInterviewHandler creates a new InterviewHandler instance.
func NewInterviewHandler(
	sessionService service.SessionService,
	analyticsService service.AnalyticsService,
	resourceService service.ResourceService,
) *InterviewHandler {
	return &InterviewHandler{
		sessionService:   sessionService,
		analyticsService: analyticsService,
		resourceService:  resourceService,
		validator:        validation.NewValidator(),
	}
}

// CreateSession godoc
// @Summary Start a new interview session
// @Tags interviews
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "Session parameters"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /interviews [post]
func (h *InterviewHandler) CreateSession(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.sessionService.Create(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// SubmitAnswer godoc
// @Summary Submit an answer for one session question
// @Tags interviews
// @Accept json
// @Produce json
// @Param request body dto.SubmitAnswerRequest true "Answer submission"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 404 {object} middleware.ErrorResponse "Session or question not found"
// @Failure 409 {object} middleware.ErrorResponse "Question already answered"
// @Router /interviews/evaluate [post]
func (h *InterviewHandler) SubmitAnswer(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateSubmitAnswerRequest(req); len(errs) > 0 {
		return errs
	}

	result, err := h.sessionService.SubmitAnswer(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// GetMySessions godoc
// @Summary List the authenticated user's sessions
// @Tags interviews
// @Produce json
// @Success 200 {array} dto.SessionSummaryResponse
// @Router /interviews/my-sessions [get]
func (h *InterviewHandler) GetMySessions(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	sessions, err := h.sessionService.ListMySessions(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}

// GetSessionByID godoc
// @Summary Get one interview session
// @Tags interviews
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /interviews/{id} [get]
func (h *InterviewHandler) GetSessionByID(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	sessionID := c.Params("id")

	session, err := h.sessionService.GetByID(c.Context(), userID, sessionID)
	if err != nil {
		return err
	}
	return c.JSON(session)
}

// GetAnalytics godoc
// @Summary Get the analytics dashboard
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.AnalyticsResponse
// @Router /interviews/analytics [get]
func (h *InterviewHandler) GetAnalytics(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	analytics, err := h.analyticsService.GetAnalytics(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(analytics)
}

// GetPredictions godoc
// @Summary Get the readiness forecast
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.PredictionsResponse
// @Router /interviews/predictions [get]
func (h *InterviewHandler) GetPredictions(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	predictions, err := h.analyticsService.GetPredictions(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"predictions": predictions})
}

// GetLeaderboard godoc
// @Summary Get the ranked leaderboard
// @Tags analytics
// @Produce json
// @Param sort query string false "Sort key: overall, sessions or streak" default(overall)
// @Success 200 {object} dto.LeaderboardResponse
// @Router /interviews/leaderboards [get]
func (h *InterviewHandler) GetLeaderboard(c *fiber.Ctx) error {
	sortKey := c.Query("sort", string(domain.LeaderboardOverall))

	leaderboard, err := h.analyticsService.GetLeaderboard(c.Context(), sortKey)
	if err != nil {
		return err
	}
	return c.JSON(leaderboard)
}

// GetResources godoc
// @Summary List study resources
// @Tags resources
// @Produce json
// @Param category query string false "Category filter"
// @Param type query string false "Resource type filter"
// @Param difficulty query string false "Difficulty filter"
// @Success 200 {object} dto.ResourceListResponse
// @Router /interviews/resources [get]
func (h *InterviewHandler) GetResources(c *fiber.Ctx) error {
	filter := domain.ResourceFilter{
		Category:   c.Query("category"),
		Type:       c.Query("type"),
		Difficulty: c.Query("difficulty"),
	}

	resources, err := h.resourceService.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(resources)
}
