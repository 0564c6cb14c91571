package serverutils

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{
		Status:  "ok",
		Message: message,
		Data:    data,
	}
}
