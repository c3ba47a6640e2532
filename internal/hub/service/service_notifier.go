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

package service

import (
	"time"

	"github.com/go-crew/crew/internal/hub/model"
	"github.com/go-crew/crew/pkg/log"
	"github.com/go-resty/resty/v2"
)

// InviteNotifier 邀请投递，失败不影响邀请本身的持久化
type InviteNotifier interface {
	NotifyInvited(invitation model.TeamInvitation, teamName string)
}

// WebhookNotifier posts invitation events to the mail gateway webhook.
// Delivery is best effort; the invitation record is already committed
// by the time the notifier runs.
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &WebhookNotifier{client: client, url: url}
}

type inviteEvent struct {
	Email     string    `json:"email"`
	TeamId    string    `json:"teamId"`
	TeamName  string    `json:"teamName"`
	Role      string    `json:"role"`
	Message   string    `json:"message,omitempty"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (n *WebhookNotifier) NotifyInvited(invitation model.TeamInvitation, teamName string) {
	if n.url == "" {
		return
	}
	event := inviteEvent{
		Email:     invitation.Email,
		TeamId:    invitation.TeamId,
		TeamName:  teamName,
		Role:      invitation.Role,
		Message:   invitation.Message,
		Token:     invitation.Token,
		ExpiresAt: invitation.ExpiresAt,
	}
	resp, err := n.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(n.url)
	if err != nil {
		log.Errorw("dispatch invite mail failed", "email", invitation.Email, "err", err)
		return
	}
	if resp.IsError() {
		log.Errorw("invite mail gateway rejected", "email", invitation.Email, "status", resp.StatusCode())
	}
}

// NopNotifier 静默丢弃通知，测试与未配置网关时使用
type NopNotifier struct{}

func (NopNotifier) NotifyInvited(model.TeamInvitation, string) {}
