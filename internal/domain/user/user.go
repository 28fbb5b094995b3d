package user

import (
	"time"

	"crewline/internal/common"
)

type Role string

const (
	RoleHost       Role = "host"
	RoleTeamLeader Role = "team_leader"
	RoleAdmin      Role = "admin"
)

type User struct {
	ID           common.UUID `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	FullName     string      `json:"full_name"`
	Role         Role        `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
}
