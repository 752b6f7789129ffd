package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Violation нарушение правила валидации поля (имя поля из json тега)
type Violation struct {
	Field string
	Rule  string
	Param string
}

// Validator общий экземпляр go-playground/validator, имена полей берутся из json тегов
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return instance
}

// Struct валидирует структуру по тегам validate
func Struct(s interface{}) error {
	return Validator().Struct(s)
}

// IsEmail проверяет формат email
func IsEmail(value string) bool {
	return Validator().Var(value, "required,email") == nil
}

// Violations раскладывает ошибку валидатора на нарушения по полям
func Violations(err error) []Violation {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	result := make([]Violation, 0, len(validationErrors))
	for _, fe := range validationErrors {
		result = append(result, Violation{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return result
}

// Describe возвращает краткое описание нарушений: "name: required, capacity: gt=0"
func Describe(err error) string {
	violations := Violations(err)
	if len(violations) == 0 {
		if err == nil {
			return ""
		}
		return err.Error()
	}

	parts := make([]string, len(violations))
	for i, v := range violations {
		rule := v.Rule
		if v.Param != "" {
			rule += "=" + v.Param
		}
		parts[i] = v.Field + ": " + rule
	}
	return strings.Join(parts, ", ")
}
