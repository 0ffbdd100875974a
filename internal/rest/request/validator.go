package request

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Guyuepp/picshare/domain"
)

// RegisterValidators 在 gin 的校验引擎上注册自定义规则
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return v.RegisterValidation("tagvalue", validateTagValue)
}

// validateTagValue 标签不能为空白, 长度不超过 MaxTagLength 个字符
func validateTagValue(fl validator.FieldLevel) bool {
	v := strings.TrimSpace(fl.Field().String())
	return v != "" && utf8.RuneCountInString(v) <= domain.MaxTagLength
}
