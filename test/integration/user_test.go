package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：用户认证集成测试
// 覆盖注册→登录→个人资料→登出的完整认证流程

func TestUserAuthFlow(t *testing.T) {
	username := GenerateTestUsername("tester")
	password := "Test1234"

	t.Run("注册新用户", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/register", map[string]string{
			"username": username,
			"email":    username + "@test.com",
			"password": password,
		}, "")
		require.Equal(t, 0, resp.Code, "注册失败: %s", resp.Message)

		var data RegisterData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, username, data.Username)
		assert.NotZero(t, data.ID)

		t.Logf("✓ 注册成功: ID=%d", data.ID)
	})

	t.Run("用户名重复被拒绝", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/register", map[string]string{
			"username": username,
			"email":    "other_" + username + "@test.com",
			"password": password,
		}, "")
		assert.NotEqual(t, 0, resp.Code, "重复用户名应被拒绝")
		t.Log("✓ 重复用户名被正确拒绝")
	})

	t.Run("弱密码被拒绝", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/register", map[string]string{
			"username": GenerateTestUsername("weak"),
			"email":    GenerateTestUsername("weak") + "@test.com",
			"password": "12345678", // 纯数字
		}, "")
		assert.NotEqual(t, 0, resp.Code, "纯数字密码应被拒绝")
		t.Log("✓ 弱密码被正确拒绝")
	})

	var token string

	t.Run("登录获取Token", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"username": username,
			"password": password,
		}, "")
		require.Equal(t, 0, resp.Code, "登录失败: %s", resp.Message)

		var data LoginData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotEmpty(t, data.AccessToken)
		assert.NotEmpty(t, data.RefreshToken)
		assert.Greater(t, data.ExpiresIn, int64(0))
		token = data.AccessToken

		t.Log("✓ 登录成功")
	})

	t.Run("错误密码登录失败", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"username": username,
			"password": "WrongPass1",
		}, "")
		assert.NotEqual(t, 0, resp.Code, "错误密码应登录失败")
		t.Log("✓ 错误密码被正确拒绝")
	})

	t.Run("查询个人资料", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/users/profile", token)
		require.Equal(t, 0, resp.Code, "查询资料失败: %s", resp.Message)

		var data RegisterData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, username, data.Username)

		t.Logf("✓ 个人资料: %s <%s>", data.Username, data.Email)
	})

	t.Run("无Token访问资料被拒绝", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/users/profile", "")
		assert.NotEqual(t, 0, resp.Code)
		t.Log("✓ 未认证访问被正确拒绝")
	})

	t.Run("修改密码后旧密码失效", func(t *testing.T) {
		newPassword := "NewPass5678"
		resp := PutJSON(t, BaseURL+"/users/password", map[string]string{
			"old_password": password,
			"new_password": newPassword,
		}, token)
		require.Equal(t, 0, resp.Code, "修改密码失败: %s", resp.Message)

		// 旧密码登录失败
		oldResp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"username": username,
			"password": password,
		}, "")
		assert.NotEqual(t, 0, oldResp.Code, "旧密码应失效")

		// 新密码登录成功
		newResp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"username": username,
			"password": newPassword,
		}, "")
		assert.Equal(t, 0, newResp.Code, "新密码应可登录")

		t.Log("✓ 密码修改生效")
	})

	t.Run("登出后Token失效", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/logout", nil, token)
		require.Equal(t, 0, resp.Code, "登出失败: %s", resp.Message)

		// 进入黑名单的Token不能再访问受保护接口
		profileResp := GetJSON(t, BaseURL+"/users/profile", token)
		assert.NotEqual(t, 0, profileResp.Code, "登出后的Token应失效")

		t.Log("✓ 登出后Token被正确拉黑")
	})
}
