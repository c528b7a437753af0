package product

import (
	"context"
	"errors"

	"github.com/xiebiao/inventory/internal/domain/category"
	"github.com/xiebiao/inventory/internal/domain/inventory"
	"github.com/xiebiao/inventory/internal/domain/product"
)

// CreateProductUseCase 商品创建用例
// 设计说明:
// 1. 商品与库存记录一对一,创建商品时必须同时建立库存记录,
//    两个写入放在同一事务中(不出现"有商品没库存"的中间状态)
// 2. 初始库存作为基线计入,不产生流水(流水只记录后续调整)
type CreateProductUseCase struct {
	productRepo  product.Repository
	categoryRepo category.Repository
	invRepo      inventory.Repository
	tx           inventory.Transactor
}

// NewCreateProductUseCase 创建商品创建用例
func NewCreateProductUseCase(
	productRepo product.Repository,
	categoryRepo category.Repository,
	invRepo inventory.Repository,
	tx inventory.Transactor,
) *CreateProductUseCase {
	return &CreateProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		invRepo:      invRepo,
		tx:           tx,
	}
}

// CreateProductRequest 商品创建请求DTO
type CreateProductRequest struct {
	Name         string // 商品名称
	SKU          string // SKU编号(唯一)
	Description  string // 商品描述
	CategoryID   uint   // 所属分类ID
	Price        int64  // 价格(分)
	MinimumStock int    // 最低库存阈值(低于该值触发告警)
	ImageURL     string // 商品图片URL
	InitialStock int    // 初始库存数量(>=0)
}

// CreateProductResponse 商品创建响应DTO
type CreateProductResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Description  string `json:"description,omitempty"`
	CategoryID   uint   `json:"category_id"`
	Price        int64  `json:"price"`
	MinimumStock int    `json:"minimum_stock"`
	ImageURL     string `json:"image_url,omitempty"`
	Quantity     int    `json:"quantity"`
	CreatedAt    string `json:"created_at"`
}

// Execute 执行商品创建
func (uc *CreateProductUseCase) Execute(ctx context.Context, req CreateProductRequest) (*CreateProductResponse, error) {
	// 1. 构建实体并校验业务不变量
	p := product.NewProduct(req.Name, req.SKU, req.Description, req.CategoryID, req.Price, req.MinimumStock, req.ImageURL)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if req.InitialStock < 0 {
		return nil, product.ErrInvalidInitialStock
	}

	// 2. 分类必须存在
	if _, err := uc.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	// 3. SKU唯一性预检(最终由数据库UNIQUE索引兜底)
	existing, err := uc.productRepo.FindBySKU(ctx, p.SKU)
	if err == nil && existing != nil {
		return nil, product.ErrSKUDuplicate
	}
	if err != nil && !errors.Is(err, product.ErrProductNotFound) {
		return nil, err
	}

	// 4. 事务内创建商品与库存记录
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.productRepo.Create(txCtx, p); err != nil {
			return err
		}
		return uc.invRepo.Create(txCtx, inventory.New(p.ID, req.InitialStock))
	})
	if err != nil {
		return nil, err
	}

	return &CreateProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		Price:        p.Price,
		MinimumStock: p.MinimumStock,
		ImageURL:     p.ImageURL,
		Quantity:     req.InitialStock,
		CreatedAt:    p.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
