package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Dmc0125/task-app/internal/session"
)

const unauthenticatedBody = `{"error":"Not authenticated","success":false}`

func authTestRouter(codec *session.Codec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(codec), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	return r
}

func TestRequireAuth_ValidCredential(t *testing.T) {
	codec := session.NewCodec("test-signature-key")
	router := authTestRouter(codec)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: codec.Issue(42)})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":42}`, rec.Body.String())
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	router := authTestRouter(session.NewCodec("test-signature-key"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, unauthenticatedBody, rec.Body.String())
}

func TestRequireAuth_RejectsBadCredentials(t *testing.T) {
	codec := session.NewCodec("test-signature-key")
	router := authTestRouter(codec)

	valid := codec.Issue(42)
	foreign := session.NewCodec("other-key").Issue(42)

	for name, value := range map[string]string{
		"empty value":       "",
		"cleared cookie":    "0",
		"no separator":      "42",
		"foreign signature": foreign,
		"tampered id":       "43" + valid[2:],
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if value != "" {
			req.AddCookie(&http.Cookie{Name: session.CookieName, Value: value})
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		assert.JSONEq(t, unauthenticatedBody, rec.Body.String(), name)
	}
}
