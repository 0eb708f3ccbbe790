package rest

import (
	"fmt"
	"net/http"

	"dao/handler/param"
)

const defaultLimit = 50

type pageParams struct {
	Cursor int64 `json:"cursor"`
	Limit  int   `json:"limit" valid:"range(0|500)"`
}

func bindPage(r *http.Request) (pageParams, error) {
	var params pageParams
	if err := param.Binding(r, &params); err != nil {
		return params, err
	}

	if params.Limit <= 0 {
		params.Limit = defaultLimit
	}

	return params, nil
}

func nextCursor(n, limit int, lastID int64) string {
	if n < limit || n == 0 {
		return ""
	}

	return fmt.Sprint(lastID)
}
