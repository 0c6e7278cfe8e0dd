// Package handler serves the interactive sign-in flow: redirect to the
// provider, handle the callback, issue the session cookie, sign out.
package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Dmc0125/task-app/internal/auth"
	"github.com/Dmc0125/task-app/internal/auth/provider"
	"github.com/Dmc0125/task-app/internal/auth/resolver"
	"github.com/Dmc0125/task-app/internal/logger"
	"github.com/Dmc0125/task-app/internal/metrics"
	"github.com/Dmc0125/task-app/internal/session"
)

// User-visible failure messages. Internal failure causes are deliberately
// collapsed; only the unknown-provider case is distinguishable.
const (
	msgUnknownProvider = "Unknown provider"
	msgAuthFailed      = "Authentication failed"
)

// RedirectURLs are the client-side destinations for the browser flow.
type RedirectURLs struct {
	Client        string // generic client entry point
	SigninSuccess string
	SigninFail    string // receives an error_msg query parameter
}

// OAuthClient is the provider-facing surface the callback needs:
// code-for-token exchange and the profile fetch. Satisfied by
// oauth.Client.
type OAuthClient interface {
	Exchange(ctx context.Context, cfg provider.Config, code string) (string, error)
	FetchProfile(ctx context.Context, cfg provider.Config, accessToken string) (*auth.Identity, error)
}

type Handler struct {
	catalog  *provider.Catalog
	oauth    OAuthClient
	resolver *resolver.Resolver
	codec    *session.Codec
	urls     RedirectURLs
}

func New(
	catalog *provider.Catalog,
	oauthClient OAuthClient,
	identityResolver *resolver.Resolver,
	codec *session.Codec,
	urls RedirectURLs,
) *Handler {
	return &Handler{
		catalog:  catalog,
		oauth:    oauthClient,
		resolver: identityResolver,
		codec:    codec,
		urls:     urls,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/auth/signin/:provider", h.signIn)
	r.GET("/auth/callback/:provider", h.callback)
	r.GET("/auth/signout", h.signOut)
}

func (h *Handler) signIn(c *gin.Context) {
	cfg, err := h.catalog.Resolve(c.Param("provider"))
	if err != nil {
		h.redirectFail(c, msgUnknownProvider)
		return
	}
	c.Redirect(http.StatusFound, cfg.AuthCodeURL())
}

func (h *Handler) callback(c *gin.Context) {
	providerKey := c.Param("provider")

	cfg, err := h.catalog.Resolve(providerKey)
	if err != nil {
		metrics.SignInAttempts.WithLabelValues(providerKey, metrics.OutcomeUnknownProvider).Inc()
		h.redirectFail(c, msgUnknownProvider)
		return
	}

	// Provider declined (user canceled consent, provider-side error).
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("provider declined authorization", map[string]any{
			"provider": providerKey,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		metrics.SignInAttempts.WithLabelValues(providerKey, metrics.OutcomeDeclined).Inc()
		c.Redirect(http.StatusPermanentRedirect, h.urls.Client)
		return
	}

	code := c.Query("code")
	if code == "" {
		metrics.SignInAttempts.WithLabelValues(providerKey, metrics.OutcomeExchangeFailed).Inc()
		h.redirectFail(c, msgAuthFailed)
		return
	}

	ctx := c.Request.Context()

	accessToken, err := h.oauth.Exchange(ctx, cfg, code)
	if err != nil {
		logger.Error("token exchange failed", map[string]any{
			"provider": providerKey,
			"error":    err.Error(),
		})
		metrics.SignInAttempts.WithLabelValues(providerKey, metrics.OutcomeExchangeFailed).Inc()
		h.redirectFail(c, msgAuthFailed)
		return
	}

	identity, err := h.oauth.FetchProfile(ctx, cfg, accessToken)
	if err != nil {
		logger.Error("profile fetch failed", map[string]any{
			"provider": providerKey,
			"error":    err.Error(),
		})
		metrics.SignInAttempts.WithLabelValues(providerKey, metrics.OutcomeProfileFailed).Inc()
		h.redirectFail(c, msgAuthFailed)
		return
	}

	userID, err := h.resolver.Resolve(ctx, identity)
	if err != nil {
		logger.Error("identity resolution failed", map[string]any{
			"provider": providerKey,
			"error":    err.Error(),
		})
		metrics.SignInAttempts.WithLabelValues(providerKey, metrics.OutcomeStorageFailed).Inc()
		h.redirectFail(c, msgAuthFailed)
		return
	}

	session.SetCookie(c.Writer, h.codec.Issue(userID))
	metrics.SignInAttempts.WithLabelValues(providerKey, metrics.OutcomeSuccess).Inc()
	c.Redirect(http.StatusPermanentRedirect, h.urls.SigninSuccess)
}

func (h *Handler) signOut(c *gin.Context) {
	session.ClearCookie(c.Writer)
	c.Redirect(http.StatusFound, h.urls.Client)
}

func (h *Handler) redirectFail(c *gin.Context, msg string) {
	// url.PathEscape keeps spaces as %20 in the query value.
	c.Redirect(http.StatusFound, h.urls.SigninFail+"?error_msg="+url.PathEscape(msg))
}
