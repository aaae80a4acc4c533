package model

type DatabaseInfo struct {
	Host       string `json:"host"`
	Name       string `json:"name"`
	Connection string `json:"connection"`
}

type TableInfo struct {
	Name string `json:"name"`
	Rows int64  `json:"rows"`
}

// StatusReport is the body of GET /status/db.
type StatusReport struct {
	Status    string       `json:"status"`
	Message   string       `json:"message"`
	Timestamp string       `json:"timestamp"`
	Database  DatabaseInfo `json:"database"`
	Tables    []TableInfo  `json:"tables"`
}
