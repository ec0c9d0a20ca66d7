package apiclient

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// buildURL joins base and endpoint and appends query, skipping nil values
// and nil pointers. Keys are encoded in sorted order.
func buildURL(base, endpoint string, query map[string]any) (string, error) {
	target := base + "/" + strings.TrimLeft(endpoint, "/")
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", target, err)
	}

	if len(query) == 0 {
		return u.String(), nil
	}

	values := u.Query()
	for k, v := range query {
		s, ok := queryValue(v)
		if !ok {
			continue
		}
		values.Set(k, s)
	}
	u.RawQuery = values.Encode()
	return u.String(), nil
}

func queryValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface()), true
}
