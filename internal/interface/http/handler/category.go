package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcategory "github.com/xiebiao/inventory/internal/application/category"
	"github.com/xiebiao/inventory/internal/domain/category"
	"github.com/xiebiao/inventory/internal/interface/http/dto"
	"github.com/xiebiao/inventory/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	manageUseCase *appcategory.ManageCategoryUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(manageUseCase *appcategory.ManageCategoryUseCase) *CategoryHandler {
	return &CategoryHandler{manageUseCase: manageUseCase}
}

// Create 创建分类
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      201 {object} response.Response{data=dto.CategoryResponse}
// @Failure      400 {object} response.Response "参数错误/名称已存在"
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.Create(c.Request.Context(), appcategory.CategoryRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toCategoryResponse(result, 0))
}

// List 查询全部分类
// @Summary      分类列表
// @Description  返回全部分类及各分类下的商品数
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CategoryResponse}
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	result, err := h.manageUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]*dto.CategoryResponse, len(result))
	for i, item := range result {
		items[i] = toCategoryResponse(&item.Category, item.ProductCount)
	}
	response.Success(c, items)
}

// Get 获取分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的分类ID")
		return
	}

	result, err := h.manageUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCategoryResponse(result, 0))
}

// Update 更新分类
// @Summary      更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.UpdateCategoryRequest true "分类信息"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的分类ID")
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.Update(c.Request.Context(), id, appcategory.CategoryRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCategoryResponse(result, 0))
}

// Delete 删除分类
// @Summary      删除分类
// @Description  分类下存在商品时拒绝删除
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "分类下仍有商品"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的分类ID")
		return
	}

	if err := h.manageUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// =========================================
// 辅助函数
// =========================================

// parseIDParam 解析路径中的:id参数
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}

// toCategoryResponse 领域对象 → HTTP响应
func toCategoryResponse(cat *category.Category, productCount int64) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:           cat.ID,
		Name:         cat.Name,
		Description:  cat.Description,
		ProductCount: productCount,
		CreatedAt:    cat.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    cat.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
