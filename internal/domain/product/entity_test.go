package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewProduct SKU去除首尾空白
func TestNewProduct(t *testing.T) {
	p := NewProduct("北欧三人沙发", "  SOFA-001  ", "布艺", 1, 299900, 3, "")
	assert.Equal(t, "SOFA-001", p.SKU)
	assert.Equal(t, int64(299900), p.Price)
	assert.False(t, p.CreatedAt.IsZero())
}

// TestProduct_Validate 商品业务规则校验
func TestProduct_Validate(t *testing.T) {
	valid := func() *Product {
		return NewProduct("沙发", "SOFA-001", "", 1, 299900, 3, "")
	}

	t.Run("合法商品", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	tests := []struct {
		name   string
		mutate func(p *Product)
		want   error
	}{
		{"名称为空", func(p *Product) { p.Name = "  " }, ErrInvalidName},
		{"SKU为空", func(p *Product) { p.SKU = "" }, ErrInvalidSKU},
		{"分类缺失", func(p *Product) { p.CategoryID = 0 }, ErrInvalidCategory},
		{"价格为负", func(p *Product) { p.Price = -1 }, ErrInvalidPrice},
		{"最低库存线为负", func(p *Product) { p.MinimumStock = -1 }, ErrInvalidMinimumStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			assert.ErrorIs(t, p.Validate(), tt.want)
		})
	}
}

// TestProduct_UpdateInfo 空字符串表示不修改,SKU不可变
func TestProduct_UpdateInfo(t *testing.T) {
	p := NewProduct("沙发", "SOFA-001", "原描述", 1, 299900, 3, "")

	p.UpdateInfo("新沙发", "", 2, "")
	assert.Equal(t, "新沙发", p.Name)
	assert.Equal(t, "原描述", p.Description, "空字符串不应覆盖原值")
	assert.Equal(t, uint(2), p.CategoryID)
	assert.Equal(t, "SOFA-001", p.SKU, "SKU创建后不可变")
}

// TestProduct_UpdatePrice 价格不能为负
func TestProduct_UpdatePrice(t *testing.T) {
	p := NewProduct("沙发", "SOFA-001", "", 1, 299900, 3, "")

	require.NoError(t, p.UpdatePrice(319900))
	assert.Equal(t, int64(319900), p.Price)

	assert.ErrorIs(t, p.UpdatePrice(-100), ErrInvalidPrice)
	assert.Equal(t, int64(319900), p.Price, "失败时价格不变")
}

// TestProduct_UpdateMinimumStock 告警线不能为负
func TestProduct_UpdateMinimumStock(t *testing.T) {
	p := NewProduct("沙发", "SOFA-001", "", 1, 299900, 3, "")

	require.NoError(t, p.UpdateMinimumStock(0))
	assert.Equal(t, 0, p.MinimumStock, "告警线0表示关闭低库存告警")

	assert.ErrorIs(t, p.UpdateMinimumStock(-1), ErrInvalidMinimumStock)
}
