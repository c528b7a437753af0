package handler

import (
	"github.com/gin-gonic/gin"

	appproduct "github.com/xiebiao/inventory/internal/application/product"
	"github.com/xiebiao/inventory/internal/domain/product"
	"github.com/xiebiao/inventory/internal/interface/http/dto"
	"github.com/xiebiao/inventory/pkg/response"
)

// ProductHandler 商品HTTP处理器
type ProductHandler struct {
	createUseCase *appproduct.CreateProductUseCase
	manageUseCase *appproduct.ManageProductUseCase
	deleteUseCase *appproduct.DeleteProductUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(
	createUseCase *appproduct.CreateProductUseCase,
	manageUseCase *appproduct.ManageProductUseCase,
	deleteUseCase *appproduct.DeleteProductUseCase,
) *ProductHandler {
	return &ProductHandler{
		createUseCase: createUseCase,
		manageUseCase: manageUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create 创建商品
// @Summary      创建商品
// @Description  创建商品并同时建立库存记录(初始库存可为0)
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateProductRequest true "商品信息"
// @Success      201 {object} response.Response{data=dto.ProductResponse}
// @Failure      400 {object} response.Response "参数错误/SKU已存在"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appproduct.CreateProductRequest{
		Name:         req.Name,
		SKU:          req.SKU,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		Price:        req.Price,
		MinimumStock: req.MinimumStock,
		ImageURL:     req.ImageURL,
		InitialStock: req.InitialStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.ProductResponse{
		ID:           result.ID,
		Name:         result.Name,
		SKU:          result.SKU,
		Description:  result.Description,
		CategoryID:   result.CategoryID,
		Price:        result.Price,
		PriceYuan:    dto.FormatPriceYuan(result.Price),
		MinimumStock: result.MinimumStock,
		ImageURL:     result.ImageURL,
		Quantity:     result.Quantity,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.CreatedAt, // 新创建时UpdatedAt等于CreatedAt
	})
}

// List 分页查询商品列表
// @Summary      商品列表
// @Description  支持关键词搜索(商品名/SKU)、分类过滤、价格排序
// @Tags         商品
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        keyword query string false "搜索关键词"
// @Param        category_id query int false "分类ID"
// @Param        sort_by query string false "排序" Enums(price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	details, total, err := h.manageUseCase.List(c.Request.Context(), product.ListParams{
		Page:       req.Page,
		PageSize:   req.PageSize,
		Keyword:    req.Keyword,
		CategoryID: req.CategoryID,
		SortBy:     req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]*dto.ProductResponse, len(details))
	for i, d := range details {
		items[i] = toProductResponse(d)
	}
	response.SuccessWithPage(c, items, total, req.Page, req.PageSize)
}

// Get 获取商品详情
// @Summary      商品详情
// @Tags         商品
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	detail, err := h.manageUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toProductResponse(detail))
}

// Update 更新商品
// @Summary      更新商品
// @Description  更新商品信息(SKU不可修改)
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        request body dto.UpdateProductRequest true "商品信息"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 指针为nil表示不修改最低库存阈值
	minimumStock := -1
	if req.MinimumStock != nil {
		minimumStock = *req.MinimumStock
	}

	result, err := h.manageUseCase.Update(c.Request.Context(), appproduct.UpdateProductRequest{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		Price:        req.Price,
		MinimumStock: minimumStock,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.ProductResponse{
		ID:           result.ID,
		Name:         result.Name,
		SKU:          result.SKU,
		Description:  result.Description,
		CategoryID:   result.CategoryID,
		Price:        result.Price,
		PriceYuan:    dto.FormatPriceYuan(result.Price),
		MinimumStock: result.MinimumStock,
		ImageURL:     result.ImageURL,
		CreatedAt:    result.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    result.UpdatedAt.Format("2006-01-02 15:04:05"),
	})
}

// Delete 删除商品
// @Summary      删除商品
// @Description  存在库存流水的商品拒绝删除;删除时级联删除库存记录
// @Tags         商品
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "商品存在库存流水"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// toProductResponse 商品详情视图 → HTTP响应
func toProductResponse(d *product.Detail) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           d.ID,
		Name:         d.Name,
		SKU:          d.SKU,
		Description:  d.Description,
		CategoryID:   d.CategoryID,
		CategoryName: d.CategoryName,
		Price:        d.Price,
		PriceYuan:    dto.FormatPriceYuan(d.Price),
		MinimumStock: d.MinimumStock,
		ImageURL:     d.ImageURL,
		Quantity:     d.Quantity,
		CreatedAt:    d.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    d.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
