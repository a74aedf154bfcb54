package endpoint

import (
	"encoding/json"
	"errors"
	"net/http"

	e "github.com/datastax/bigtable-admin-apis/rest/errors"
	m "github.com/datastax/bigtable-admin-apis/rest/models"
	"github.com/datastax/bigtable-admin-apis/wire"
)

// RespondJSONObjectWithCode writes the object and status header to the response. Important to note that if this is being
// used for an error case then an empty return will need to immediately follow the call to this function.
// Protobuf messages are written in their canonical JSON form.
func RespondJSONObjectWithCode(w http.ResponseWriter, code int, obj interface{}) {
	setCommonHeaders(w)
	var err error
	var jsonBytes []byte
	switch v := obj.(type) {
	case nil:
	case wire.Message:
		jsonBytes, err = wire.MarshalJSON(v)
	default:
		jsonBytes, err = json.Marshal(obj)
	}
	writeJSONBytes(w, jsonBytes, err, code)
}

func writeJSONBytes(w http.ResponseWriter, jsonBytes []byte, err error, code int) {
	if err != nil {
		RespondWithError(w, errors.New("unable to marshal response"), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)
	if jsonBytes != nil {
		_, _ = w.Write(jsonBytes)
	}
}

func RespondWithError(w http.ResponseWriter, err error, code int) {
	requestError := m.ModelError{
		Description: e.Message(err),
		Code:        code,
	}
	RespondJSONObjectWithCode(w, code, requestError)
}

// RespondWithStatusError picks the HTTP status from err itself.
func RespondWithStatusError(w http.ResponseWriter, err error) {
	RespondWithError(w, err, e.StatusCode(err))
}

func setCommonHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
}
