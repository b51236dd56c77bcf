package handler

import (
	"context"
	"errors"
	"net/url"
	"time"

	"shortlist/internal/delivery/http/dto"
	"shortlist/internal/delivery/http/middleware"
	"shortlist/internal/pkg/response"
	"shortlist/internal/search"
	"shortlist/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const MessageCandidateNotFound = "Candidate not found"

type CandidatesHandler struct {
	uc      usecase.CandidateUsecase
	timeout time.Duration
}

func NewCandidatesHandler(uc usecase.CandidateUsecase, timeout time.Duration) *CandidatesHandler {
	return &CandidatesHandler{uc: uc, timeout: timeout}
}

func (h *CandidatesHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/candidates", h.HandleList)
	r.Get("/candidates/:email", h.HandleGet)
}

func (h *CandidatesHandler) HandleList(c fiber.Ctx) error {
	params := search.Params{
		FilterParams: search.FilterParams{
			Skills:         c.Query("skills"),
			SkillMatchType: c.Query("skillMatchType"),
			MinExperience:  c.Query("minExperience"),
			Education:      c.Query("education"),
			Location:       c.Query("location"),
			Name:           c.Query("name"),
			Company:        c.Query("company"),
			RoleName:       c.Query("roleName"),
			MinSalary:      c.Query("minSalary"),
			MaxSalary:      c.Query("maxSalary"),
		},
		Page:  c.Query("page"),
		Limit: c.Query("limit"),
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	page, err := h.uc.ListCandidates(ctx, params)
	if err != nil {
		return mapCandidateUsecaseError(err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewCandidateListResponse(page))
}

func (h *CandidatesHandler) HandleGet(c fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	cand, err := h.uc.GetCandidate(ctx, email)
	if err != nil {
		return mapCandidateUsecaseError(err)
	}

	return c.Status(fiber.StatusOK).JSON(cand)
}

func (h *CandidatesHandler) requestContext(c fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Context())
	}
	return context.WithTimeout(c.Context(), h.timeout)
}

func mapCandidateUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusNotFound, MessageCandidateNotFound, nil, err)
	case errors.Is(err, context.DeadlineExceeded):
		return middleware.NewAppError(fiber.StatusGatewayTimeout, response.MessageTimeout, nil, err)
	case errors.Is(err, context.Canceled):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
