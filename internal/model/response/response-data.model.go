package response

type ResponseData struct {
	Ec    int    `json:"ec"`
	Msg   string `json:"msg,omitempty"`
	Error string `json:"error,omitempty"`
	Total *int   `json:"total,omitempty"`
	Data  any    `json:"data,omitempty"`
	Meta  any    `json:"meta,omitempty"`
}

// WithError returns a copy of r carrying err's text.
func (r ResponseData) WithError(err error) ResponseData {
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// WithData returns a copy of r carrying data and an optional meta block.
func (r ResponseData) WithData(data any, meta any) ResponseData {
	r.Data = data
	r.Meta = meta
	return r
}
