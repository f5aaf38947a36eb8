package admin

import "errorfree/internal/domain"

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string            `json:"token"`
	Admin *domain.AdminUser `json:"admin"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
