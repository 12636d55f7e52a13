package agent

// Response - tüm agent'ların ortak cevap formatı
type Response struct {
	Success  bool                   `json:"success"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata"`
	Error    string                 `json:"error,omitempty"`
}

func failure(err error) Response {
	return Response{Success: false, Metadata: map[string]interface{}{}, Error: err.Error()}
}
