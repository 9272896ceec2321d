package models

type DeleteAccountRequest struct {
	UID string `json:"uid"`
}
