package shared

import (
	"github.com/templatehub/storefront/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
)

// ErrorRule 定义业务错误到接口错误响应的映射关系。
type ErrorRule struct {
	Target error
	Code   int
	Key    string
}

// keyedError 携带国际化 key 与参数的业务错误（如优惠券边界校验）。
type keyedError interface {
	error
	Key() string
	Args() []interface{}
}

// RespondMappedError 按规则表匹配错误；命中规则时不记录原始错误。
// 若错误自身携带 key，则优先使用其本地化文案，以便返回具体的违规边界。
func RespondMappedError(c *gin.Context, err error, rules []ErrorRule, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if !errors.Is(err, rule.Target) {
			continue
		}
		var keyed keyedError
		if errors.As(err, &keyed) {
			msg := i18n.Sprintf(i18n.ResolveLocale(c), keyed.Key(), keyed.Args()...)
			RespondErrorWithMsg(c, rule.Code, msg, nil)
			return
		}
		RespondError(c, rule.Code, rule.Key, nil)
		return
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatErrorRules 合并多组规则，靠前的规则优先。
func ConcatErrorRules(groups ...[]ErrorRule) []ErrorRule {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]ErrorRule, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
