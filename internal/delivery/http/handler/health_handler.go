package handler

import (
	"shortlist/internal/delivery/http/dto"
	"shortlist/internal/pkg/response"
	"shortlist/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type cacheStatus interface {
	Enabled() bool
}

type HealthHandler struct {
	uc    usecase.CandidateUsecase
	cache cacheStatus
}

func NewHealthHandler(uc usecase.CandidateUsecase, cache cacheStatus) *HealthHandler {
	return &HealthHandler{uc: uc, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Handle)
}

func (h *HealthHandler) Handle(c fiber.Ctx) error {
	if h.uc == nil {
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	}
	enabled := h.cache != nil && h.cache.Enabled()
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewHealthResponse(h.uc.Stats(c.Context()), enabled))
}
