package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/inventory/pkg/errors"
)

// TestHTTPStatus 业务错误码到HTTP状态码的映射
func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"成功", 0, http.StatusOK},
		{"库存不足(业务错误)", apperrors.ErrCodeInsufficientStock, http.StatusBadRequest},
		{"参数错误", apperrors.ErrCodeInvalidParams, http.StatusBadRequest},
		{"并发冲突", apperrors.ErrCodeConflict, http.StatusConflict},
		{"商品不存在", apperrors.ErrCodeProductNotFound, http.StatusNotFound},
		{"分类不存在", apperrors.ErrCodeCategoryNotFound, http.StatusNotFound},
		{"未认证", apperrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{"内部错误", apperrors.ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httpStatus(tt.code))
		})
	}
}

// TestError AppError透出业务码,非AppError不透出底层错误文本
func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("业务错误透出错误码", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Error(c, apperrors.ErrInsufficientStock)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"code":40001`)
	})

	t.Run("未知错误不泄露细节", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Error(c, assert.AnError)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error(), "底层错误文本不应透出给客户端")
	})
}

// TestNewPageData 总页数向上取整
func TestNewPageData(t *testing.T) {
	pd := NewPageData(nil, 21, 1, 10)
	require.Equal(t, 3, pd.TotalPages, "21条/每页10条 = 3页")

	pd = NewPageData(nil, 20, 2, 10)
	assert.Equal(t, 2, pd.TotalPages)

	pd = NewPageData(nil, 0, 1, 10)
	assert.Equal(t, 0, pd.TotalPages)
}
