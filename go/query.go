package billingserver

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// queryDate binds an optional YYYY-MM-DD query parameter; empty means absent.
func queryDate(c *gin.Context, name string) (*time.Time, error) {
	if c.Query(name) == "" {
		return nil, nil
	}
	var value *openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	day := value.Time
	return &day, nil
}

// queryInt binds an optional integer query parameter; absent means 0.
func queryInt(c *gin.Context, name string) (int, error) {
	if c.Query(name) == "" {
		return 0, nil
	}
	var value *int
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		return 0, err
	}
	if value == nil {
		return 0, nil
	}
	return *value, nil
}

// queryString binds an optional string query parameter.
func queryString(c *gin.Context, name string) (string, error) {
	var value *string
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}
