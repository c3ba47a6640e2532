package consts

const (
	// UserSessionKey redis 会话键前缀，值存在即视为在线
	UserSessionKey = "crew:session:"

	// TeamSnapshotChannel redis 快照广播频道前缀，后接 teamId
	TeamSnapshotChannel = "crew:team:snapshot:"
)
