package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID parses the numeric "id" path parameter. On failure it writes
// the 400 response itself and returns false.
func ParamID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
