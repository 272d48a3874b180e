package user

import "time"

type User struct {
	ID                    int64        `gorm:"primaryKey"`
	Email                 string       `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash          string       `gorm:"column:password_hash;not null"`
	FirstName             string       `gorm:"column:first_name"`
	LastName              string       `gorm:"column:last_name"`
	Phone                 string       `gorm:"column:phone"`
	EmployeeID            *string      `gorm:"column:employee_id;uniqueIndex"`
	StudentCode           *string      `gorm:"column:student_code;uniqueIndex"`
	CustomID              *string      `gorm:"column:custom_id;uniqueIndex"`
	RoleID                int64        `gorm:"column:role_id;not null;index"`
	Role                  *Role        `gorm:"foreignKey:RoleID"`
	AdditionalPermissions []Permission `gorm:"many2many:user_permissions;joinForeignKey:UserID;joinReferences:PermissionID"`
	IsActive              bool         `gorm:"column:is_active"`
	LastLogin             *time.Time   `gorm:"column:last_login"`
	CreatedAt             time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

type Role struct {
	ID          int64        `gorm:"primaryKey"`
	Name        string       `gorm:"column:name;uniqueIndex;not null"`
	DisplayName string       `gorm:"column:display_name;not null"`
	Description string       `gorm:"column:description"`
	Permissions []Permission `gorm:"many2many:role_permissions;joinForeignKey:RoleID;joinReferences:PermissionID"`
	IsSystem    bool         `gorm:"column:is_system"`
	IsActive    bool         `gorm:"column:is_active"`
	Icon        string       `gorm:"column:icon"`
	Color       string       `gorm:"column:color"`
	Priority    int          `gorm:"column:priority;default:0"`
	CreatedBy   *int64       `gorm:"column:created_by"`
	CreatedAt   time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

func (Role) TableName() string { return "roles" }

type Permission struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Code        string    `gorm:"column:code;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	Module      string    `gorm:"column:module;not null;index"`
	Action      string    `gorm:"column:action;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Permission) TableName() string { return "permissions" }
