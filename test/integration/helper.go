package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：测试辅助工具
// 这个文件包含集成测试的通用辅助函数，遵循DRY原则（Don't Repeat Yourself）
// 将重复的代码（HTTP请求、JSON解析）封装成可复用的函数
//
// 运行前提：服务已在本机8080端口启动（go run ./cmd/api）

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegisterData 注册响应数据
type RegisterData struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// CategoryData 分类响应数据
type CategoryData struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ProductCount int64  `json:"product_count"`
}

// ProductData 商品响应数据
type ProductData struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
	Price        int64  `json:"price"`
	PriceYuan    string `json:"price_yuan"`
	MinimumStock int    `json:"minimum_stock"`
	Quantity     int    `json:"quantity"`
}

// AdjustData 库存调整响应数据
type AdjustData struct {
	ProductID        uint   `json:"product_id"`
	Quantity         int    `json:"quantity"`
	PreviousQuantity int    `json:"previous_quantity"`
	MovementID       uint   `json:"movement_id"`
	Type             string `json:"type"`
	Adjusted         int    `json:"adjusted"`
	LowStock         bool   `json:"low_stock"`
}

// StockData 库存查询响应数据
type StockData struct {
	ProductID    uint   `json:"product_id"`
	ProductName  string `json:"product_name"`
	SKU          string `json:"sku"`
	MinimumStock int    `json:"minimum_stock"`
	Quantity     int    `json:"quantity"`
	LowStock     bool   `json:"low_stock"`
}

// MovementData 流水响应数据
type MovementData struct {
	ID        uint   `json:"id"`
	ProductID uint   `json:"product_id"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
}

// MovementListData 流水列表响应数据
type MovementListData struct {
	List       []MovementData `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// ProductListData 商品列表响应数据
type ProductListData struct {
	List       []ProductData `json:"list"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// doJSON 发送任意方法的JSON请求并解析统一响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
//
// 教学说明：
// - 使用*testing.T参数，可以在失败时立即终止测试
// - 使用require包进行断言，失败会立即停止（不继续执行）
// - 返回*Response而非error，简化调用方代码
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, "POST", url, data, token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, "GET", url, nil, token)
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, "PUT", url, data, token)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, "DELETE", url, nil, token)
}

// seq 进程内单调递增序号，与时间戳拼接保证同一纳秒内也不重复
var seq uint64

// GenerateTestUsername 生成唯一的测试用户名
// 使用时间戳+序号确保唯一性，避免测试重复运行时用户名冲突
func GenerateTestUsername(prefix string) string {
	return fmt.Sprintf("%s_%d_%d", prefix, time.Now().Unix(), atomic.AddUint64(&seq, 1))
}

// GenerateTestSKU 生成唯一的测试SKU
func GenerateTestSKU(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano()%1000000000, atomic.AddUint64(&seq, 1))
}

// RegisterTestUser 注册测试用户并返回Token
//
// 教学说明：
// 这是一个"高阶"辅助函数，封装了注册+登录的完整流程
// 简化了测试代码，让测试更关注业务逻辑而非基础设施
func RegisterTestUser(t *testing.T, prefix string) (username string, token string) {
	// 1. 注册
	username = GenerateTestUsername(prefix)
	registerReq := map[string]string{
		"username": username,
		"email":    username + "@test.com",
		"password": "Test1234",
	}

	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	// 2. 登录
	loginReq := map[string]string{
		"username": username,
		"password": "Test1234",
	}

	loginResp := PostJSON(t, BaseURL+"/users/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return username, loginData.AccessToken
}

// CreateTestCategory 创建测试分类并返回分类ID
func CreateTestCategory(t *testing.T, token string, name string) uint {
	categoryReq := map[string]string{
		"name":        fmt.Sprintf("%s_%d_%d", name, time.Now().Unix(), atomic.AddUint64(&seq, 1)),
		"description": "集成测试用分类",
	}

	categoryResp := PostJSON(t, BaseURL+"/categories", categoryReq, token)
	require.Equal(t, 0, categoryResp.Code, "创建分类失败: %s", categoryResp.Message)

	var categoryData CategoryData
	err := json.Unmarshal(categoryResp.Data, &categoryData)
	require.NoError(t, err, "解析分类响应失败")

	return categoryData.ID
}

// CreateTestProduct 创建测试商品并返回商品ID
//
// 教学说明：
// 封装了"分类→商品"的依赖链，返回productID供库存测试使用
func CreateTestProduct(t *testing.T, token string, name string, initialStock int) uint {
	categoryID := CreateTestCategory(t, token, "cat")

	productReq := map[string]interface{}{
		"name":          name,
		"sku":           GenerateTestSKU("TEST"),
		"description":   "集成测试用商品",
		"category_id":   categoryID,
		"price":         299900, // 2999.00元
		"minimum_stock": 3,
		"initial_stock": initialStock,
	}

	productResp := PostJSON(t, BaseURL+"/products", productReq, token)
	require.Equal(t, 0, productResp.Code, "创建商品失败: %s", productResp.Message)

	var productData ProductData
	err := json.Unmarshal(productResp.Data, &productData)
	require.NoError(t, err, "解析商品响应失败")

	return productData.ID
}
