// Package controllers contains the HTTP handlers. They bind and decode
// requests, delegate to the service layer, and translate domain errors
// into the uniform JSON envelope.
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresouza/portfolio/errs"
	"github.com/andresouza/portfolio/utils"
)

// Cache key prefixes for the public read endpoints.
const (
	cacheProjectsPrefix = "cache:projects:"
	cacheAboutPrefix    = "cache:about:"
)

// fail maps a domain error onto a status code and envelope.
func fail(ctx *gin.Context, err error) {
	var ve *errs.ValidationError
	switch {
	case errs.IsAuthRequired(err):
		utils.Error(ctx, http.StatusUnauthorized, 40100, "authentication required")
	case errs.IsForbidden(err):
		utils.Error(ctx, http.StatusForbidden, 40300, "admin access required")
	case errs.IsNotFound(err):
		utils.Error(ctx, http.StatusNotFound, 40400, "resource not found")
	case errors.As(err, &ve):
		utils.Error(ctx, http.StatusBadRequest, 40000, ve.Message)
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorf("request failed path=%s err=%v", ctx.FullPath(), err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
	}
}

// serveCached writes a previously cached success envelope verbatim.
func serveCached(ctx *gin.Context, key string) bool {
	b, ok := utils.CacheGetBytes(key)
	if !ok {
		return false
	}
	ctx.Data(http.StatusOK, "application/json", b)
	return true
}

// respondAndCache sends a success envelope and stores the same envelope
// under the cache key.
func respondAndCache(ctx *gin.Context, key string, data interface{}) {
	utils.CacheSetJSON(key, utils.JSONResponse{Code: 0, Message: "success", Data: data}, 0)
	utils.Success(ctx, data)
}
