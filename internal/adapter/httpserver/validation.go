package httpserver

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// validateStruct runs tag validation and flattens failures into a
// field -> tag map suitable for the error envelope details.
func validateStruct(v any) (map[string]string, error) {
	if err := getValidator().Struct(v); err != nil {
		details := map[string]string{}
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				details[strings.ToLower(fe.Field())] = fe.Tag()
			}
		}
		return details, err
	}
	return nil, nil
}
