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

package http

var (
	Failed                        = failed(500, "Request failed")
	RequestParameterParsingFailed = failed(5001, "Request parameter parsing failed")
	TeamIdIsEmpty                 = failed(5002, "Team id is empty")
	InternalError                 = failed(5000, "Internal error, please contact the administrator")

	// Unauthorized 401
	Unauthorized         = failed(4401, "Unauthorized")
	AuthenticationFailed = failed(4402, "Authentication failed")
	AuthorizationEmpty   = failed(4404, "Authorization is empty")
	InvalidToken         = failed(4405, "Invalid token")
	TokenBeEmpty         = failed(4406, "Token cannot be empty")
	TokenExpired         = failed(4407, "Token is expired")
	TokenFormatIncorrect = failed(4408, "Token format is incorrect")

	// BadRequest 400
	BadRequest = failed(4000, "Bad request")
	NotFound   = failed(4004, "Not found")

	// Forbidden 403
	Forbidden            = failed(4030, "Forbidden")
	PermissionDenied     = failed(4031, "Permission denied")
	SelfActionDisallowed = failed(4032, "Cannot manage yourself")

	// membership domain
	SeatLimitExceeded     = failed(4121, "No available seats")
	InvalidEmail          = failed(4122, "Invalid email address")
	InvalidRoleTransition = failed(4123, "Invalid role transition")
	InvitationNotFound    = failed(4124, "Invitation not found")
	InvitationExpired     = failed(4125, "Invitation is expired")
	MemberNotFound        = failed(4126, "Member not found")
	TeamNotFound          = failed(4127, "Team not found")
	PersistenceFailure    = failed(5003, "Persistence failure, please retry")
)

var (
	Success = success(200, "Request Success")
)

// failed 构造函数
func failed(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}

// success 构造函数
func success(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}
