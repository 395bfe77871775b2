package api

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"example.com/exercisetracker/internal/domain"
)

var errBadBody = &domain.StatusError{Status: http.StatusBadRequest, Message: "unable to parse body"}

// bodyValues normalizes JSON and form-encoded request bodies into url.Values
// so handlers read both the same way. JSON numbers arrive as their decimal
// rendering.
func bodyValues(r *http.Request) (url.Values, error) {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if contentType == "application/json" {
		payload := map[string]interface{}{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return nil, errBadBody
		}

		values := url.Values{}
		for key, value := range payload {
			switch v := value.(type) {
			case nil:
			case string:
				values.Set(key, v)
			case float64:
				values.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
			case bool:
				values.Set(key, strconv.FormatBool(v))
			default:
				values.Set(key, fmt.Sprintf("%v", v))
			}
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, errBadBody
	}
	return r.PostForm, nil
}
