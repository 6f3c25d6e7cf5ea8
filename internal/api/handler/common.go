package handler

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/consts"
	"Keystone/internal/service"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

// copyOption 枚举与时间在返回对象中统一为字符串
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				t := src.(time.Time)
				if t.IsZero() {
					return "", nil
				}
				return t.UTC().Format(time.RFC3339), nil
			},
		},
		{
			SrcType: model.StatusActive,
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				return src.(model.ModerationStatus).String(), nil
			},
		},
		{
			SrcType: model.VisibilityPublic,
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				return src.(model.Visibility).String(), nil
			},
		},
		{
			SrcType: model.NotificationFollow,
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				return src.(model.NotificationType).String(), nil
			},
		},
	},
}

func toDTO(to, from any) error {
	return copier.CopyWithOption(to, from, copyOption)
}

// caller 鉴权中间件注入的认证主体
func caller(c *gin.Context) string {
	return c.GetString(consts.PrincipalKey)
}

func parsePostID(c *gin.Context) (uint64, error) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		return 0, service.ErrParamInvalid
	}
	return postID, nil
}
