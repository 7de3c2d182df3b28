package dto

type UserFilter struct {
	Role string `form:"role" binding:"omitempty,oneof=ADMIN DONOR VOLUNTEER"`
}
