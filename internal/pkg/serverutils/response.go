package serverutils

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	Code    int    `json:"code,omitempty"`
	Stage   string `json:"stage,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Response[any] {
	return Response[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// StageErrorResponse names the failing pipeline stage and error kind, so the
// caller never has to parse the message to find out where a run died.
func StageErrorResponse(code int, message, stage, kind string) Response[any] {
	return Response[any]{
		Success: false,
		Code:    code,
		Message: message,
		Stage:   stage,
		Kind:    kind,
	}
}
