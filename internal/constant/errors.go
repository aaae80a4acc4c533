package constant

import (
	"net/http"

	"github.com/duccv/shop-admin/internal/model/response"
)

var BAD_REQUEST = response.ResponseData{
	Ec:  http.StatusBadRequest,
	Msg: "Bad request",
}

var INVALID_REQUEST = response.ResponseData{
	Ec:  http.StatusBadRequest,
	Msg: "Invalid request payload",
}

var INVALID_QUERY = response.ResponseData{
	Ec:  http.StatusBadRequest,
	Msg: "Invalid query parameters",
}

var UNAUTHORIZED = response.ResponseData{
	Ec:  http.StatusUnauthorized,
	Msg: "Unauthorized: No token provided",
}

var INVALID_CREDENTIALS = response.ResponseData{
	Ec:  http.StatusUnauthorized,
	Msg: "Invalid credentials",
}

var MALFORMED_TOKEN = response.ResponseData{
	Ec:  http.StatusUnauthorized,
	Msg: "Unauthorized: Malformed token",
}

var INVALID_SIGNATURE = response.ResponseData{
	Ec:  http.StatusUnauthorized,
	Msg: "Unauthorized: Invalid token signature",
}

var TOKEN_EXPIRED = response.ResponseData{
	Ec:  http.StatusUnauthorized,
	Msg: "Unauthorized: Token expired",
}

var NOT_FOUND = response.ResponseData{
	Ec:  http.StatusNotFound,
	Msg: "Endpoint not found",
}

var METHOD_NOT_ALLOWED = response.ResponseData{
	Ec:  http.StatusMethodNotAllowed,
	Msg: "Method not allowed",
}

var REQUEST_TIMEOUT = response.ResponseData{
	Ec:  http.StatusRequestTimeout,
	Msg: "Request timeout",
}

var INTERNAL_SERVER_ERROR = response.ResponseData{
	Ec:  http.StatusInternalServerError,
	Msg: "Internal server error",
}

var FORBIDDEN = response.ResponseData{
	Ec:  http.StatusForbidden,
	Msg: "Forbidden",
}

var SUCCESS = response.ResponseData{
	Ec:  http.StatusOK,
	Msg: "Success",
}
