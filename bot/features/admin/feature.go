package admin

import (
	"smarterdev/bot/common"
	"smarterdev/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the /bytes-admin command group. Admin permission gating
// happens here, not in the service layer.
type Feature struct {
	service interfaces.BytesService
}

// New creates the admin feature
func New(service interfaces.BytesService) *Feature {
	return &Feature{
		service: service,
	}
}

// HandleCommand dispatches /bytes-admin subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.MemberIsAdmin(i.Member) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Unknown subcommand.")
		return
	}

	switch options[0].Name {
	case "reset-streak":
		f.handleResetStreak(s, i, options[0].Options)
	case "stats":
		f.handleStats(s, i)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}
