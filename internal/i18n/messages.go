package i18n

var catalog = map[string]map[string]string{
	LocaleEnUS: {
		"error.bad_request":               "Invalid request parameters",
		"error.unauthorized":              "Unauthorized",
		"error.forbidden":                 "Permission denied",
		"error.not_found":                 "Resource not found",
		"error.internal":                  "Internal server error",
		"error.auth_header_missing":       "Missing authorization header",
		"error.auth_header_invalid":       "Invalid authorization header",
		"error.token_invalid":             "Invalid or expired token",
		"error.token_revoked":             "Token has been revoked, please sign in again",
		"error.jwt_secret_missing":        "Authentication is not configured",
		"error.admin_id_invalid":          "Invalid admin id",
		"error.admin_id_type_invalid":     "Invalid admin id type",
		"error.admin_login_invalid":       "Invalid username or password",
		"error.login_failed":              "Login failed",
		"error.login_too_many":            "Too many login attempts, please retry in %d seconds",
		"error.rate_limited":              "Too many requests, please retry in %d seconds",
		"error.rate_limit_unavailable":    "Rate limiter unavailable",
		"error.category_create_failed":    "Failed to create category",
		"error.role_invalid":              "Unknown or reserved role",
		"error.authz_fetch_failed":        "Failed to load roles",
		"error.authz_update_failed":       "Failed to update roles",
		"error.coupon_not_found":          "Coupon not found",
		"error.coupon_invalid":            "Invalid coupon definition",
		"error.coupon_code_exists":        "Coupon code already exists",
		"error.coupon_not_eligible":       "Coupon is not applicable to this order",
		"error.coupon_limit_exceeded":     "Coupon usage limit reached",
		"error.coupon_below_minimum":      "Order amount does not meet the coupon minimum",
		"error.coupon_fetch_failed":       "Failed to load coupons",
		"error.coupon_create_failed":      "Failed to create coupon",
		"error.coupon_update_failed":      "Failed to update coupon",
		"error.coupon_delete_failed":      "Failed to delete coupon",
		"error.coupon_usage_fetch_failed": "Failed to load coupon usages",
		"error.coupon_code_required":      "Coupon code is required",
		"error.coupon_name_required":      "Coupon name is required",
		"error.coupon_kind_invalid":       "Coupon type must be coupon or promotion",
		"error.coupon_discount_type":      "Discount type must be percentage, fixed_amount or free_shipping",
		"error.coupon_value_required":     "discount_value is required",
		"error.coupon_value_negative":     "discount_value must be greater than or equal to 0",
		"error.coupon_percentage_max":     "discount_value must be less than or equal to 100 for percentage coupons",
		"error.coupon_amount_negative":    "%s must be greater than or equal to 0",
		"error.coupon_limit_negative":     "%s must be greater than or equal to 0",
		"error.coupon_eligibility":        "customer_eligibility must be all, new_customers, returning_customers or vip_customers",
		"error.coupon_window":             "valid_from must be earlier than or equal to valid_until",
		"error.coupon_usage_over_limit":   "usage_limit must not be lower than the current usage_count (%d)",
		"error.coupon_email_invalid":      "Invalid email in applicable_customer_emails: %s",
		"error.product_not_found":         "Product not found",
		"error.product_not_available":     "Product is not available",
		"error.product_fetch_failed":      "Failed to load products",
		"error.product_create_failed":     "Failed to create product",
		"error.product_price_invalid":     "Product price is invalid",
		"error.slug_exists":               "Slug already exists",
		"error.slug_invalid":              "Slug is required",
		"error.category_fetch_failed":     "Failed to load categories",
		"error.order_item_invalid":        "Invalid order items",
		"error.order_email_required":      "Customer email is required",
		"error.order_not_found":           "Order not found",
		"error.order_status_invalid":      "Order status does not allow this operation",
		"error.order_create_failed":       "Failed to create order",
		"error.order_update_failed":       "Failed to update order",
		"error.order_fetch_failed":        "Failed to load orders",
		"error.customer_update_failed":    "Failed to update customer",
		"error.customer_fetch_failed":     "Failed to load customers",
		"error.customer_email_invalid":    "Invalid customer email",
		"email.coupon_redeemed.subject":   "Your order %s is confirmed",
		"email.coupon_redeemed.body":      "Thanks for your purchase. Coupon %s saved you %s %s on order %s.",
	},
	LocaleZhCN: {
		"error.bad_request":               "请求参数错误",
		"error.unauthorized":              "未授权",
		"error.forbidden":                 "无权限访问",
		"error.not_found":                 "资源不存在",
		"error.internal":                  "服务器内部错误",
		"error.auth_header_missing":       "缺少认证信息",
		"error.auth_header_invalid":       "认证信息格式错误",
		"error.token_invalid":             "Token 无效或已过期",
		"error.token_revoked":             "登录状态已失效，请重新登录",
		"error.jwt_secret_missing":        "认证服务未配置",
		"error.admin_id_invalid":          "管理员 ID 无效",
		"error.admin_id_type_invalid":     "管理员 ID 类型错误",
		"error.admin_login_invalid":       "用户名或密码错误",
		"error.login_failed":              "登录失败",
		"error.login_too_many":            "登录尝试过多，请 %d 秒后再试",
		"error.rate_limited":              "请求过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable":    "限流服务不可用",
		"error.category_create_failed":    "创建分类失败",
		"error.role_invalid":              "角色不存在或为保留角色",
		"error.authz_fetch_failed":        "获取角色失败",
		"error.authz_update_failed":       "更新角色失败",
		"error.coupon_not_found":          "优惠券不存在",
		"error.coupon_invalid":            "优惠券配置无效",
		"error.coupon_code_exists":        "优惠码已存在",
		"error.coupon_not_eligible":       "优惠券不适用于当前订单",
		"error.coupon_limit_exceeded":     "优惠券使用次数已达上限",
		"error.coupon_below_minimum":      "订单金额未达到优惠券使用门槛",
		"error.coupon_fetch_failed":       "获取优惠券失败",
		"error.coupon_create_failed":      "创建优惠券失败",
		"error.coupon_update_failed":      "更新优惠券失败",
		"error.coupon_delete_failed":      "删除优惠券失败",
		"error.coupon_usage_fetch_failed": "获取优惠券使用记录失败",
		"error.coupon_code_required":      "优惠码不能为空",
		"error.coupon_name_required":      "优惠券名称不能为空",
		"error.coupon_kind_invalid":       "类型必须为 coupon 或 promotion",
		"error.coupon_discount_type":      "优惠方式必须为 percentage、fixed_amount 或 free_shipping",
		"error.coupon_value_required":     "discount_value 不能为空",
		"error.coupon_value_negative":     "discount_value 必须大于等于 0",
		"error.coupon_percentage_max":     "百分比优惠的 discount_value 不能大于 100",
		"error.coupon_amount_negative":    "%s 必须大于等于 0",
		"error.coupon_limit_negative":     "%s 必须大于等于 0",
		"error.coupon_eligibility":        "customer_eligibility 取值无效",
		"error.coupon_window":             "valid_from 不能晚于 valid_until",
		"error.coupon_usage_over_limit":   "usage_limit 不能小于当前已使用次数（%d）",
		"error.coupon_email_invalid":      "applicable_customer_emails 中存在无效邮箱：%s",
		"error.product_not_found":         "商品不存在",
		"error.product_not_available":     "商品不可购买",
		"error.product_fetch_failed":      "获取商品失败",
		"error.product_create_failed":     "创建商品失败",
		"error.product_price_invalid":     "商品价格无效",
		"error.slug_exists":               "Slug 已存在",
		"error.slug_invalid":              "Slug 不能为空",
		"error.category_fetch_failed":     "获取分类失败",
		"error.order_item_invalid":        "订单项无效",
		"error.order_email_required":      "客户邮箱不能为空",
		"error.order_not_found":           "订单不存在",
		"error.order_status_invalid":      "订单状态不允许该操作",
		"error.order_create_failed":       "创建订单失败",
		"error.order_update_failed":       "更新订单失败",
		"error.order_fetch_failed":        "获取订单失败",
		"error.customer_update_failed":    "更新客户失败",
		"error.customer_fetch_failed":     "获取客户失败",
		"error.customer_email_invalid":    "客户邮箱无效",
		"email.coupon_redeemed.subject":   "订单 %s 已确认",
		"email.coupon_redeemed.body":      "感谢您的购买。优惠码 %s 为您节省了 %s %s（订单 %s）。",
	},
}
