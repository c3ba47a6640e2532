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

package errs

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors of the membership domain. Every rejected mutation leaves
// state untouched and returns one of these (or a typed error below).
var (
	ErrSeatLimitExceeded    = errors.New("no available seats")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationExpired    = errors.New("invitation expired")
	ErrMemberNotFound       = errors.New("member not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrSelfActionDisallowed = errors.New("cannot manage yourself")
)

// PermissionDeniedError 携带可直接展示给管理界面的拒绝原因
type PermissionDeniedError struct {
	Reason string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Reason)
}

// PermissionDenied wraps a checker denial reason into a typed error.
func PermissionDenied(reason string) error {
	return &PermissionDeniedError{Reason: reason}
}

// InvalidRoleTransitionError 角色变更被拒绝
type InvalidRoleTransitionError struct {
	Reason string
}

func (e *InvalidRoleTransitionError) Error() string {
	return fmt.Sprintf("invalid role transition: %s", e.Reason)
}

// InvalidRoleTransition wraps a role-change denial reason into a typed error.
func InvalidRoleTransition(reason string) error {
	return &InvalidRoleTransitionError{Reason: reason}
}

// InvalidEmailError 邮箱格式非法
type InvalidEmailError struct {
	Email string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email address: %s", e.Email)
}

// InvalidEmail reports a malformed invite address.
func InvalidEmail(email string) error {
	return &InvalidEmailError{Email: email}
}

// PersistenceError is the only transient error class; retrying is the
// caller's decision, the core never retries on its own.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps a storage driver error, capturing the call stack.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: pkgerrors.WithStack(err)}
}

// IsPersistence reports whether err is a transient persistence failure.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
