package httpx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/foody-app/foody-api/internal/apperr"
)

var tagNameOnce sync.Once

// useJSONNames makes validation errors report the json (or form) name of a field.
func useJSONNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
}

// Bind decodes the request (JSON, form or multipart, by content type) into dst and
// validates it. The returned error carries the first failing field's message.
func Bind(c *gin.Context, dst any) error {
	useJSONNames()
	if err := c.ShouldBind(dst); err != nil {
		return bindError(err)
	}
	return nil
}

// BindQuery binds and validates query string parameters.
func BindQuery(c *gin.Context, dst any) error {
	useJSONNames()
	if err := c.ShouldBindQuery(dst); err != nil {
		return bindError(err)
	}
	return nil
}

func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperr.Validation(fieldMessage(verrs[0]))
	}
	return apperr.Validation("invalid request body")
}

func fieldMessage(fe validator.FieldError) string {
	f := fe.Field()
	lengthy := fe.Kind() == reflect.String || fe.Kind() == reflect.Slice
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", f, fe.Param())
	case "email":
		return f + " must be a valid email"
	case "min", "gte":
		if lengthy {
			return fmt.Sprintf("%s must be at least %s characters", f, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", f, fe.Param())
	case "max", "lte":
		if lengthy {
			return fmt.Sprintf("%s must be at most %s characters", f, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", f, fe.Param())
	case "uuid", "uuid4":
		return f + " must be a valid id"
	default:
		return f + " is invalid"
	}
}
