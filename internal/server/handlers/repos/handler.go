package repos

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/repowatch/repowatch/internal/github"
	"github.com/repowatch/repowatch/internal/history"
	"github.com/repowatch/repowatch/internal/repo"
	"github.com/repowatch/repowatch/internal/sync"
	"github.com/repowatch/repowatch/internal/watcher"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const defaultChecksLimit = 50

type Handler struct {
	syncSvc *sync.Service
	repoSvc *repo.Service
	checks  *history.Repository
	watch   watcher.Config

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(
	syncSvc *sync.Service,
	repoSvc *repo.Service,
	checks *history.Repository,
	watch watcher.Config,
	validator *validator.Validate,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		syncSvc: syncSvc,
		repoSvc: repoSvc,
		checks:  checks,
		watch:   watch,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/repos")

	r.Use(h.errorsHandler)
	r.Get("/", h.list)
	r.Post("/check", h.check)
	r.Get("/checks", h.listChecks)
}

// List the watched repositories with their locally derived state and the last
// recorded check.
func (h *Handler) list(c *fiber.Ctx) error {
	responses := lo.Map(h.watch.Repos, func(path string, _ int) RepoResponse {
		response := RepoResponse{Path: path}

		state, err := h.repoSvc.State(c.Context(), path)
		if err != nil {
			response.Error = err.Error()
		} else {
			response.State = &StateResponse{
				Revision:       state.Revision,
				LastCommitDate: state.LastCommitDate,
				Origin:         state.Origin,
				APIURL:         state.APIURL,
				WebURL:         state.WebURL,
			}
		}

		latest, err := h.checks.LatestByRepo(c.Context(), path)
		if err == nil {
			record := h.toCheckRecord(latest)
			response.LatestCheck = &record
		} else if !errors.Is(err, history.ErrNotFound) {
			h.logger.Error("failed to load latest check",
				zap.String("path", path),
				zap.Error(err))
		}

		return response
	})

	return c.JSON(responses)
}

// Run a synchronization check now.
func (h *Handler) check(c *fiber.Ctx) error {
	var req CheckRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	result, err := h.syncSvc.Check(c.Context(), req.Path)
	if err != nil {
		return fmt.Errorf("failed to check repository: %w", err)
	}

	return c.JSON(CheckResultResponse{
		Path:     result.Path,
		Revision: result.Revision,
		Remote: CommitResponse{
			ShortHash: result.Remote.ShortHash,
			Timestamp: result.Remote.Timestamp,
		},
		InSync:    result.InSync,
		FromCache: result.FromCache,
	})
}

// List recent check records, newest first.
func (h *Handler) listChecks(c *fiber.Ctx) error {
	limit := defaultChecksLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	checks, err := h.checks.List(c.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list checks: %w", err)
	}

	responses := lo.Map(checks, func(check history.Check, _ int) CheckRecordResponse {
		return h.toCheckRecord(&check)
	})

	return c.JSON(responses)
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, history.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, repo.ErrUnrecognizedOrigin), errors.Is(err, repo.ErrCommandFailed):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, github.ErrRemoteTimeout):
		return fiber.NewError(fiber.StatusGatewayTimeout, err.Error())
	case errors.Is(err, github.ErrRemoteUnavailable),
		errors.Is(err, github.ErrRemoteProtocol),
		errors.Is(err, github.ErrMalformedTimestamp):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}

func (h *Handler) toCheckRecord(check *history.Check) CheckRecordResponse {
	return CheckRecordResponse{
		ID:              check.ID,
		CheckedAt:       check.CheckedAt,
		Path:            check.RepoPath,
		Revision:        check.Revision,
		RemoteShortHash: check.RemoteShortHash,
		RemoteTimestamp: check.RemoteTimestamp,
		InSync:          check.InSync,
		FromCache:       check.FromCache,
	}
}
