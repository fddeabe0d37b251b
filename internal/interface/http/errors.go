package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-accounts/internal/application/apperrors"
	"github.com/oksasatya/go-user-accounts/pkg/response"
)

// writeError maps a use-case failure to its HTTP status. Anything that is
// not a business kind is a storage or crypto failure: it surfaces as a
// generic 500 for this request and is never retried here.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	kind := apperrors.KindOf(err)
	status := http.StatusInternalServerError
	msg := "internal error"

	switch kind {
	case apperrors.KindInvalidCredentials, apperrors.KindUserNotFound,
		apperrors.KindMissingToken, apperrors.KindInvalidToken, apperrors.KindExpiredToken:
		status = http.StatusUnauthorized
		c.Header("WWW-Authenticate", "Bearer")
		msg = err.Error()
	case apperrors.KindUserIsDeactivated, apperrors.KindOldPasswordDoesntMatch:
		status = http.StatusForbidden
		msg = err.Error()
	case apperrors.KindUserAlreadyExists:
		status = http.StatusConflict
		msg = err.Error()
	case apperrors.KindUserIsUnderage:
		status = http.StatusUnprocessableEntity
		msg = err.Error()
	case apperrors.KindNewPasswordConfirmationMismatch, apperrors.KindNewPasswordCantBeSameAsOld:
		status = http.StatusBadRequest
		msg = err.Error()
	default:
		if logger != nil {
			logger.WithError(err).Error("request failed")
		}
	}

	var detail any
	if kind != "" {
		detail = string(kind)
	}
	resp := response.Error[any](c, status, msg, detail)
	c.JSON(resp.Status, resp)
}
