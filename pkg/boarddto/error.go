package boarddto

// Error is the JSON body of every failed API call.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "board service error"
}
