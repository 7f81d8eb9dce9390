package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tip-advisor/domain"
	"tip-advisor/repository"
	"tip-advisor/service"
)

// Los límites repiten service.MaxBillAmount y service.MaxGroupSize
type suggestTipRequest struct {
	BillAmount     *float64 `json:"bill_amount" binding:"required,gte=0,lte=1000000000"`
	ServiceQuality string   `json:"service_quality" binding:"omitempty,servicequality"`
	GroupSize      int      `json:"group_size" binding:"omitempty,min=1,max=100"`
}

func (r suggestTipRequest) toDomain() domain.TipRequest {
	quality := domain.ServiceQuality(r.ServiceQuality)
	if quality == "" {
		quality = domain.ServiceGood
	}
	groupSize := r.GroupSize
	if groupSize == 0 {
		groupSize = service.DefaultGroupSize
	}
	var bill float64
	if r.BillAmount != nil {
		bill = *r.BillAmount
	}
	return domain.TipRequest{
		BillAmount:     bill,
		ServiceQuality: quality,
		GroupSize:      groupSize,
	}
}

type suggestionResponse struct {
	Suggestion string `json:"suggestion"`
	Failed     bool   `json:"failed"`
}

type SuggestionHandler struct {
	client   *service.SuggestionClient
	sessions *service.SessionService
}

func NewSuggestionHandler(client *service.SuggestionClient, sessions *service.SessionService) *SuggestionHandler {
	return &SuggestionHandler{client: client, sessions: sessions}
}

// SuggestTip waits for the suggestion. Remote failures come back as 200
// with the error text, since they are display strings.
func (h *SuggestionHandler) SuggestTip(c *gin.Context) {
	var req suggestTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := <-h.client.SuggestTipAsync(c.Request.Context(), req.toDomain())

	c.JSON(http.StatusOK, suggestionResponse{
		Suggestion: outcome.Display(),
		Failed:     outcome.Failed(),
	})
}

func (h *SuggestionHandler) CreateSession(c *gin.Context) {
	id, err := h.sessions.NewSession(c.Request.Context())
	if err != nil {
		slog.Error("failed to create session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session_id": id})
}

// RequestSuggestion starts a suggestion for the session and returns at once.
// Clients poll GetSession until loading is false.
func (h *SuggestionHandler) RequestSuggestion(c *gin.Context) {
	var req suggestTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if _, err := h.sessions.RequestSuggestion(c.Request.Context(), id, req.toDomain()); err != nil {
		h.sessionError(c, id, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"session_id": id, "loading": true})
}

func (h *SuggestionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	state, err := h.sessions.State(c.Request.Context(), id)
	if err != nil {
		h.sessionError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *SuggestionHandler) sessionError(c *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSuggestionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		slog.Error("session request failed", "session_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
