package model

// TeamStats 派生统计，永不落库，每次变更后基于成员/邀请列表重算
type TeamStats struct {
	TotalMembers   int `json:"totalMembers"`
	ActiveMembers  int `json:"activeMembers"`
	PendingInvites int `json:"pendingInvites"`
	// AvailableSeats 可为负（外部降级导致超卖），展示层自行决定是否截断
	AvailableSeats int `json:"availableSeats"`
	MaxSeats       int `json:"maxSeats"`
}

// TeamSnapshot 推送给订阅者的完整快照
type TeamSnapshot struct {
	TeamId      string           `json:"teamId"`
	Members     []TeamMember     `json:"members"`
	Invitations []TeamInvitation `json:"invitations"`
	Stats       TeamStats        `json:"stats"`
}
