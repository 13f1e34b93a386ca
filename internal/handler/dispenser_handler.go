package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"microquest/dispenser/internal/model"
	"microquest/dispenser/internal/service"
	"microquest/dispenser/pkg/response"
)

type DispenserHandler struct {
	dispenser service.DispenserService
}

func NewDispenserHandler(dispenser service.DispenserService) *DispenserHandler {
	return &DispenserHandler{dispenser: dispenser}
}

// Request dispenses the next challenge, or signals that override
// confirmation is needed once the hourly quota is spent.
func (h *DispenserHandler) Request(c *gin.Context) {
	res, err := h.dispenser.RequestChallenge(c.Request.Context())
	if err != nil {
		h.writeDispenseError(c, err)
		return
	}
	response.Success(c, res)
}

// ConfirmOverride dispenses past quota after the client confirmed.
func (h *DispenserHandler) ConfirmOverride(c *gin.Context) {
	res, err := h.dispenser.ConfirmOverride(c.Request.Context())
	if err != nil {
		h.writeDispenseError(c, err)
		return
	}
	response.Success(c, res)
}

type ResolveRequest struct {
	Action string `json:"action" binding:"required"`
}

// Resolve closes the outstanding challenge as done or skip.
func (h *DispenserHandler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	err := h.dispenser.Resolve(c.Request.Context(), model.ResolveAction(req.Action))
	switch {
	case errors.Is(err, service.ErrInvalidAction):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, err.Error())
	case err != nil:
		response.InternalError(c, "failed to resolve challenge")
	default:
		response.Success(c, nil)
	}
}

// View returns the read-only dispenser status.
func (h *DispenserHandler) View(c *gin.Context) {
	view, err := h.dispenser.View(c.Request.Context())
	if err != nil {
		response.InternalError(c, "failed to load dispenser state")
		return
	}
	response.Success(c, view)
}

func (h *DispenserHandler) writeDispenseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrPoolExhausted):
		response.NotFound(c, err.Error())
	default:
		response.InternalError(c, "failed to dispense challenge")
	}
}
