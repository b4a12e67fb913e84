package http

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/observability"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// fiberErrorToDomain keeps the status of errors raised as fiber.NewError,
// such as handler body-parse rejections and the router's own 404/405.
func fiberErrorToDomain(err *fiber.Error) *apperrors.DomainError {
	code := "INTERNAL_ERROR"
	switch err.Code {
	case fiber.StatusBadRequest:
		code = "VALIDATION_FAILED"
	case fiber.StatusUnauthorized:
		code = "UNAUTHORIZED"
	case fiber.StatusForbidden:
		code = "FORBIDDEN"
	case fiber.StatusNotFound:
		code = "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		code = "METHOD_NOT_ALLOWED"
	case fiber.StatusConflict:
		code = "CONFLICT"
	}
	return apperrors.NewDomainError(code, err.Message, err.Code, nil)
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				var domainErr *apperrors.DomainError
				var fiberErr *fiber.Error
				if errors.As(err, &fiberErr) {
					domainErr = fiberErrorToDomain(fiberErr)
				} else {
					domainErr = apperrors.ToDomainError(err)
				}
				if metrics != nil {
					metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				}
				response := fiber.Map{"error": fiber.Map{
					"code":    domainErr.Code,
					"message": domainErr.Message,
				}}
				if len(domainErr.Details) > 0 {
					response["error"].(fiber.Map)["details"] = domainErr.Details
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}
