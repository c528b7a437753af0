package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appinventory "github.com/xiebiao/inventory/internal/application/inventory"
	"github.com/xiebiao/inventory/internal/domain/inventory"
	"github.com/xiebiao/inventory/internal/interface/http/dto"
	"github.com/xiebiao/inventory/internal/interface/http/middleware"
	"github.com/xiebiao/inventory/pkg/response"
)

// InventoryHandler 库存HTTP处理器
type InventoryHandler struct {
	adjustUseCase *appinventory.AdjustStockUseCase
	getUseCase    *appinventory.GetInventoryUseCase
	listUseCase   *appinventory.ListMovementsUseCase
}

// NewInventoryHandler 创建库存处理器
func NewInventoryHandler(
	adjustUseCase *appinventory.AdjustStockUseCase,
	getUseCase *appinventory.GetInventoryUseCase,
	listUseCase *appinventory.ListMovementsUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		adjustUseCase: adjustUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
	}
}

// AdjustStock 调整库存
// @Summary      调整库存
// @Description  入库(add)或出库(remove)。库存更新与流水写入在同一事务内完成，出库数量超过现有库存时整单拒绝。
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        request body dto.AdjustStockRequest true "调整信息"
// @Success      200 {object} response.Response{data=dto.AdjustStockResponse}
// @Failure      400 {object} response.Response "参数错误/库存不足"
// @Failure      404 {object} response.Response "商品不存在"
// @Failure      409 {object} response.Response "并发冲突，可重试"
// @Router       /api/v1/inventory/{id} [post]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.adjustUseCase.Execute(c.Request.Context(), appinventory.AdjustStockRequest{
		ProductID: productID,
		Direction: req.Type,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
		UserID:    userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.AdjustStockResponse{
		ProductID:        result.ProductID,
		Quantity:         result.Quantity,
		PreviousQuantity: result.PreviousQuantity,
		MovementID:       result.MovementID,
		Type:             result.Direction,
		Adjusted:         result.Adjusted,
		LowStock:         result.LowStock,
		AdjustedAt:       result.AdjustedAt,
	})
}

// List 查询全部库存
// @Summary      库存列表
// @Description  返回全部商品的当前库存(关联商品名、SKU、价格)
// @Tags         库存
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.StockResponse}
// @Router       /api/v1/inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	views, err := h.getUseCase.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]*dto.StockResponse, len(views))
	for i, v := range views {
		items[i] = toStockResponse(v)
	}
	response.Success(c, items)
}

// Get 查询单个商品的库存
// @Summary      商品库存
// @Description  商品存在但没有库存记录时按零库存返回
// @Tags         库存
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=dto.StockResponse}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/inventory/{id} [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	view, err := h.getUseCase.GetByProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toStockResponse(view))
}

// ListMovements 查询库存流水
// @Summary      库存流水
// @Description  分页查询库存变动流水(时间倒序),支持按商品过滤
// @Tags         库存
// @Produce      json
// @Param        product_id query int false "商品ID(不传则查全部)"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var req dto.ListMovementsRequest
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

	views, total, err := h.listUseCase.Execute(c.Request.Context(), appinventory.ListMovementsRequest{
		ProductID: req.ProductID,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]*dto.MovementResponse, len(views))
	for i, v := range views {
		items[i] = toMovementResponse(v)
	}
	response.SuccessWithPage(c, items, total, req.Page, req.PageSize)
}

// =========================================
// 辅助函数:视图转换
// =========================================

// toStockResponse 库存视图 → HTTP响应
func toStockResponse(v *inventory.StockView) *dto.StockResponse {
	return &dto.StockResponse{
		ProductID:    v.ProductID,
		ProductName:  v.ProductName,
		SKU:          v.SKU,
		Price:        v.Price,
		PriceYuan:    dto.FormatPriceYuan(v.Price),
		MinimumStock: v.MinimumStock,
		Quantity:     v.Quantity,
		LowStock:     v.Quantity <= v.MinimumStock,
		UpdatedAt:    v.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// toMovementResponse 流水视图 → HTTP响应
func toMovementResponse(v *inventory.MovementView) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          v.ID,
		ProductID:   v.ProductID,
		ProductName: v.ProductName,
		SKU:         v.SKU,
		Type:        string(v.Direction),
		Quantity:    v.Quantity,
		Notes:       v.Notes,
		UserID:      v.UserID,
		Username:    v.Username,
		CreatedAt:   v.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// parseLimitQuery 解析limit查询参数
func parseLimitQuery(c *gin.Context, fallback int) int {
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			return limit
		}
	}
	return fallback
}
