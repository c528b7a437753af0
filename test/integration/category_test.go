package integration

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：分类管理集成测试
// 重点覆盖删除守卫:分类下有商品时不可删除

func TestCategoryLifecycle(t *testing.T) {
	_, token := RegisterTestUser(t, "catadmin")

	var categoryID uint
	name := fmt.Sprintf("集成测试分类_%d", time.Now().UnixNano())

	t.Run("创建分类", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/categories", map[string]string{
			"name":        name,
			"description": "测试用",
		}, token)
		require.Equal(t, 0, resp.Code, "创建分类失败: %s", resp.Message)

		var data CategoryData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		categoryID = data.ID
		assert.Equal(t, name, data.Name)

		t.Logf("✓ 分类创建成功: ID=%d", categoryID)
	})

	t.Run("分类名重复被拒绝", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/categories", map[string]string{
			"name": name,
		}, token)
		assert.NotEqual(t, 0, resp.Code, "重复分类名应被拒绝")
		t.Log("✓ 重复分类名被正确拒绝")
	})

	t.Run("分类列表带商品数", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/categories", "")
		require.Equal(t, 0, resp.Code)

		var list []CategoryData
		require.NoError(t, json.Unmarshal(resp.Data, &list))

		found := false
		for _, c := range list {
			if c.ID == categoryID {
				found = true
				assert.Equal(t, int64(0), c.ProductCount, "新分类商品数应为0")
			}
		}
		assert.True(t, found, "列表应包含新建分类")
		t.Logf("✓ 分类列表共 %d 条", len(list))
	})

	t.Run("更新分类", func(t *testing.T) {
		newName := name + "_改"
		resp := PutJSON(t, fmt.Sprintf("%s/categories/%d", BaseURL, categoryID), map[string]string{
			"name":        newName,
			"description": "改过的描述",
		}, token)
		require.Equal(t, 0, resp.Code, "更新分类失败: %s", resp.Message)

		getResp := GetJSON(t, fmt.Sprintf("%s/categories/%d", BaseURL, categoryID), "")
		require.Equal(t, 0, getResp.Code)
		var data CategoryData
		require.NoError(t, json.Unmarshal(getResp.Data, &data))
		assert.Equal(t, newName, data.Name)

		t.Log("✓ 分类更新成功")
	})

	t.Run("有商品的分类不可删除", func(t *testing.T) {
		// 往分类下挂一个商品
		productResp := PostJSON(t, BaseURL+"/products", map[string]interface{}{
			"name":        "占位商品",
			"sku":         GenerateTestSKU("HOLD"),
			"category_id": categoryID,
			"price":       100000,
		}, token)
		require.Equal(t, 0, productResp.Code, "创建商品失败: %s", productResp.Message)

		resp := DeleteJSON(t, fmt.Sprintf("%s/categories/%d", BaseURL, categoryID), token)
		assert.Equal(t, 40002, resp.Code, "有商品的分类应拒绝删除")

		t.Log("✓ 有商品的分类删除被正确拒绝")
	})

	t.Run("空分类可删除", func(t *testing.T) {
		emptyID := CreateTestCategory(t, token, "空分类")

		resp := DeleteJSON(t, fmt.Sprintf("%s/categories/%d", BaseURL, emptyID), token)
		require.Equal(t, 0, resp.Code, "删除空分类失败: %s", resp.Message)

		getResp := GetJSON(t, fmt.Sprintf("%s/categories/%d", BaseURL, emptyID), "")
		assert.Equal(t, 40403, getResp.Code, "删除后分类应不可查询")

		t.Log("✓ 空分类删除成功")
	})

	t.Run("不存在的分类返回404", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/categories/99999999", "")
		assert.Equal(t, 40403, resp.Code)
		t.Log("✓ 不存在的分类被正确处理")
	})
}
