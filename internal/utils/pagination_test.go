package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shirokane/esports-hub-api/internal/constants"
	"github.com/stretchr/testify/require"
)

func paginationContext(query string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/admin/users"+query, nil)
	return c
}

func TestGetPaginationParams_Defaults(t *testing.T) {
	params := GetPaginationParams(paginationContext(""))

	require.Equal(t, 1, params.Page)
	require.Equal(t, constants.DefaultPageSize, params.Limit)
	require.Equal(t, 0, params.Offset)
}

func TestGetPaginationParams_Explicit(t *testing.T) {
	params := GetPaginationParams(paginationContext("?page=3&limit=10"))

	require.Equal(t, 3, params.Page)
	require.Equal(t, 10, params.Limit)
	require.Equal(t, 20, params.Offset)
}

func TestGetPaginationParams_ClampsInvalid(t *testing.T) {
	params := GetPaginationParams(paginationContext("?page=-1&limit=9999"))

	require.Equal(t, 1, params.Page)
	require.Equal(t, constants.DefaultPageSize, params.Limit)
	require.Equal(t, 0, params.Offset)
}
