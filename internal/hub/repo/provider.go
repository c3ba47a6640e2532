package repo

import "github.com/google/wire"

// ProviderSet is repo providers.
var ProviderSet = wire.NewSet(
	NewTeamRepo,
	NewTeamMemberRepo,
	NewTeamInvitationRepo,
)
