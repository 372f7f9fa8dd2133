package utils

const identityKey contextKey = "identity"

const (
	RoleStaff = "STAFF"
	RoleUser  = "USER"
)
