package handler

import (
	"github.com/gin-gonic/gin"

	appdashboard "github.com/xiebiao/inventory/internal/application/dashboard"
	"github.com/xiebiao/inventory/internal/interface/http/dto"
	"github.com/xiebiao/inventory/pkg/response"
)

// DashboardHandler 仪表盘HTTP处理器
type DashboardHandler struct {
	dashboardUseCase *appdashboard.DashboardUseCase
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(dashboardUseCase *appdashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{dashboardUseCase: dashboardUseCase}
}

// LowStock 低库存商品列表
// @Summary      低库存商品
// @Description  当前数量不高于最低库存阈值的商品
// @Tags         仪表盘
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.StockResponse}
// @Router       /api/v1/dashboard/low-stock [get]
func (h *DashboardHandler) LowStock(c *gin.Context) {
	views, err := h.dashboardUseCase.LowStock(c.Request.Context())
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

// TotalValue 库存总价值
// @Summary      库存总价值
// @Description  sum(价格 × 当前数量)
// @Tags         仪表盘
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.TotalValueResponse}
// @Router       /api/v1/dashboard/value [get]
func (h *DashboardHandler) TotalValue(c *gin.Context) {
	total, err := h.dashboardUseCase.TotalValue(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.TotalValueResponse{
		TotalValue:     total,
		TotalValueYuan: dto.FormatPriceYuan(total),
	})
}

// Summary 汇总统计
// @Summary      仪表盘汇总
// @Description  商品数、分类数、在库总件数、低库存数、库存总价值
// @Tags         仪表盘
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.SummaryResponse}
// @Router       /api/v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	s, err := h.dashboardUseCase.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.SummaryResponse{
		ProductCount:   s.ProductCount,
		CategoryCount:  s.CategoryCount,
		TotalQuantity:  s.TotalQuantity,
		LowStockCount:  s.LowStockCount,
		TotalValue:     s.TotalValue,
		TotalValueYuan: dto.FormatPriceYuan(s.TotalValue),
	})
}

// RecentMovements 最近流水
// @Summary      最近库存流水
// @Tags         仪表盘
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "条数(默认10,最大50)"
// @Success      200 {object} response.Response{data=[]dto.MovementResponse}
// @Router       /api/v1/dashboard/recent [get]
func (h *DashboardHandler) RecentMovements(c *gin.Context) {
	limit := parseLimitQuery(c, 10)

	views, err := h.dashboardUseCase.RecentMovements(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]*dto.MovementResponse, len(views))
	for i, v := range views {
		items[i] = toMovementResponse(v)
	}
	response.Success(c, items)
}
