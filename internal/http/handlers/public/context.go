package public

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// customerEmailKey 与路由层可选顾客鉴权中间件写入的键保持一致
const customerEmailKey = "customer_email"

// getCustomerEmail 读取顾客 Token 中的邮箱，匿名访问返回空串
func getCustomerEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(customerEmailKey))
}
