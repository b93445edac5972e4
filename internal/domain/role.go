package domain

import "strings"

// Role 统一角色枚举。历史数据里混有 "cliente"/"CLIENTE"/"vendedor" 等写法，
// 一律在进入系统的边界处归一化，之后不再二次判断字符串。
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string { return string(r) }

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// NormalizeRole 兼容旧库/旧 token 里的葡语及大小写变体
func NormalizeRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "seller", "vendedor":
		return RoleSeller
	default:
		return RoleCustomer
	}
}
