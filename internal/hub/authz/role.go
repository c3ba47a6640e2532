// Copyright 2025 Crew Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package authz

import "fmt"

// Role 团队角色，按权限从低到高排序
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

// roleRank fixes the total order of the catalog. All comparisons must go
// through Rank; two roles compare equal only when identical.
var roleRank = map[Role]int{
	RoleViewer: 0,
	RoleEditor: 1,
	RoleAdmin:  2,
	RoleOwner:  3,
}

// Roles returns the catalog in ascending privilege order.
func Roles() []Role {
	return []Role{RoleViewer, RoleEditor, RoleAdmin, RoleOwner}
}

// ParseRole 解析角色字符串
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleRank[r]; !ok {
		return "", fmt.Errorf("unknown role: %q", s)
	}
	return r, nil
}

// Valid reports whether the role exists in the catalog.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Rank 返回角色在层级中的序号，未知角色排在 viewer 之下
func Rank(r Role) int {
	if rank, ok := roleRank[r]; ok {
		return rank
	}
	return -1
}

// AtLeast reports whether role a ranks at or above role b.
func AtLeast(a, b Role) bool {
	return Rank(a) >= Rank(b)
}
