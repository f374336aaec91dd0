// internal/models/common.go
package models

// DBStatus is the connectivity report of the store gateway.
type DBStatus struct {
	Connected bool    `json:"connected"`
	Error     *string `json:"error"`
}

func ConnectedStatus() DBStatus {
	return DBStatus{Connected: true}
}

func DisconnectedStatus(reason string) DBStatus {
	return DBStatus{Connected: false, Error: &reason}
}

// ErrorMessage returns the error text or an empty string.
func (s DBStatus) ErrorMessage() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}
