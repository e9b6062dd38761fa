// Package v1 provides the portal API routes.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/chamberhub/bizportal/application/service"
	"github.com/chamberhub/bizportal/domain/locale"
	"github.com/chamberhub/bizportal/infrastructure/api/middleware"
	"github.com/chamberhub/bizportal/infrastructure/api/v1/dto"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report the JSON name so messages match what the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it.
func decode(w http.ResponseWriter, req *http.Request, dst any) error {
	body := http.MaxBytesReader(w, req.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return middleware.NewAPIError(http.StatusBadRequest, "invalid JSON body", err)
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", service.ErrValidation, err)
	}
	problems := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		problems[i] = describe(fe)
	}
	return fmt.Errorf("%w: %s", service.ErrValidation, strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be an email address"
	case "uuid":
		return fe.Field() + " must be a UUID"
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// requestLocale resolves ?locale= first, then Accept-Language.
func requestLocale(req *http.Request) locale.Locale {
	return locale.Resolve(req.URL.Query().Get("locale"), req.Header.Get("Accept-Language"))
}

// bodyLocale prefers a locale named in a request body.
func bodyLocale(req *http.Request, fromBody string) locale.Locale {
	if strings.TrimSpace(fromBody) != "" {
		return locale.Parse(fromBody)
	}
	return requestLocale(req)
}

func localeInfo(l locale.Locale) dto.LocaleInfo {
	return dto.LocaleInfo{Locale: l.String(), Direction: l.Direction()}
}

func queryBool(req *http.Request, key string) bool {
	v, err := strconv.ParseBool(req.URL.Query().Get(key))
	return err == nil && v
}

// queryInt returns the integer parameter, or zero when absent or malformed.
func queryInt(req *http.Request, keys ...string) int {
	for _, key := range keys {
		if s := req.URL.Query().Get(key); s != "" {
			if n, err := strconv.Atoi(s); err == nil {
				return n
			}
		}
	}
	return 0
}

// pagination builds the echoed pagination block.
func pagination(page, pageSize int, total int64, totalPages int) dto.Pagination {
	return dto.Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}
