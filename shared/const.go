package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	RoleAdmin    = "admin"
	RoleCustomer = "customer"

	MaxSessionIDLength   = 128
	MaxItemTitleLength   = 200
	MaxItemImageLength   = 500
	MaxCartItems         = 100
	MaxContactNameLength = 100
	MaxContactMsgLength  = 4000
	MaxSourceLength      = 50
)
