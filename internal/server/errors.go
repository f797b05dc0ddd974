package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/emrgen/cms/internal/service"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errInvalidRequest = errors.New("invalid request")

// errorCode maps a service error kind onto its grpc code and http status.
func errorCode(err error) (codes.Code, int) {
	switch {
	case errors.Is(err, service.ErrDuplicateName):
		return codes.AlreadyExists, http.StatusConflict
	case errors.Is(err, service.ErrUnknownCollection),
		errors.Is(err, service.ErrUnknownField),
		errors.Is(err, service.ErrNotFound):
		return codes.NotFound, http.StatusNotFound
	case errors.Is(err, service.ErrVersionConflict):
		return codes.Aborted, http.StatusConflict
	case errors.Is(err, service.ErrCycle),
		errors.Is(err, service.ErrHasChildren),
		errors.Is(err, service.ErrSingletonExists),
		errors.Is(err, service.ErrVocabularyMismatch):
		return codes.FailedPrecondition, http.StatusPreconditionFailed
	case errors.Is(err, service.ErrInvalidValue), errors.Is(err, errInvalidRequest):
		return codes.InvalidArgument, http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded, http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return codes.Canceled, 499
	default:
		return codes.Internal, http.StatusInternalServerError
	}
}

// toStatus converts an error into a grpc status error. Errors that already
// carry a status pass through.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	code, _ := errorCode(err)
	if code == codes.Internal {
		logrus.Errorf("internal error: %v", err)
		return status.Error(code, "internal error")
	}
	return status.Error(code, err.Error())
}

// UnaryErrorInterceptor maps the service error kinds onto grpc codes.
func UnaryErrorInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			return nil, toStatus(err)
		}
		return resp, nil
	}
}
