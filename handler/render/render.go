package render

import (
	"encoding/json"
	"net/http"

	"dao/handler/codes"

	"github.com/sirupsen/logrus"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	JSONWithStatus(w, http.StatusOK, v)
}

// JSONWithStatus render with json and the given status
func JSONWithStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		logrus.WithError(err).Errorln("render.JSON")
	}
}

// Error write error, service errors are mapped to twirp codes
func Error(w http.ResponseWriter, err error) {
	twerr := codes.From(err)

	resp := errorResponse{
		Code: codes.Get(twerr),
		Msg:  twerr.Msg(),
	}

	if ResponseErrorMessageAsHint {
		resp.Hint = err.Error()
	}

	JSONWithStatus(w, statusOf(twerr), resp)
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	JSONWithStatus(w, http.StatusBadRequest, errorResponse{
		Code: codes.InvalidArguments,
		Msg:  err.Error(),
	})
}
