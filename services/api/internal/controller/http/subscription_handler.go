package http

import (
	"net/http"

	"opftube/pkg/logger"
	"opftube/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionUseCase usecase.SubscriptionUseCase
	logger              *logger.Logger
}

func NewSubscriptionHandler(subscriptionUseCase usecase.SubscriptionUseCase, logger *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionUseCase: subscriptionUseCase, logger: logger}
}

type SubscribeRequest struct {
	ChannelID string `json:"channel_id"`
}

// Subscribe godoc
// @Summary      Subscribe or unsubscribe
// @Description  Toggles the caller's subscription. 201 when subscribed, 200 when cancelled.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SubscribeRequest true "Channel"
// @Success      200  {object}  map[string]bool
// @Success      201  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /subscriptions/subscribe [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ChannelID == "" {
		badRequest(c, "Channel ID is required")
		return
	}
	if !bodyID(c, req.ChannelID, "Channel") {
		return
	}

	subscribed, err := h.subscriptionUseCase.Toggle(c.Request.Context(), actorFrom(c), req.ChannelID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if subscribed {
		c.JSON(http.StatusCreated, gin.H{"subscribed": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribed": false})
}

// CheckSubscription godoc
// @Summary      Is the user subscribed
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        userId     path  string  true  "User ID"
// @Param        channelId  path  string  true  "Channel ID"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Router       /subscriptions/check/{userId}/{channelId} [get]
func (h *SubscriptionHandler) CheckSubscription(c *gin.Context) {
	userID, ok := pathID(c, "userId", "User")
	if !ok {
		return
	}
	channelID, ok := pathID(c, "channelId", "Channel")
	if !ok {
		return
	}

	subscribed, err := h.subscriptionUseCase.Check(c.Request.Context(), actorFrom(c), userID, channelID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribed": subscribed})
}

// ListSubscriptions godoc
// @Summary      Channels the user follows
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200  {array}   entity.Subscription
// @Failure      403  {object}  map[string]string
// @Router       /subscriptions/{userId} [get]
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	userID, ok := pathID(c, "userId", "User")
	if !ok {
		return
	}

	subs, err := h.subscriptionUseCase.List(c.Request.Context(), actorFrom(c), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}
