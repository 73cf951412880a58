package bytes

import (
	"smarterdev/bot/common"
	"smarterdev/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the /bytes command group. All business rules live in the
// injected service; this layer only resolves Discord context and renders
// results.
type Feature struct {
	service interfaces.BytesService
}

// New creates the bytes feature
func New(service interfaces.BytesService) *Feature {
	return &Feature{
		service: service,
	}
}

// HandleCommand dispatches /bytes subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Unknown subcommand.")
		return
	}

	switch options[0].Name {
	case "balance":
		f.handleBalance(s, i)
	case "daily":
		f.handleDaily(s, i)
	case "send":
		f.handleSend(s, i, options[0].Options)
	case "leaderboard":
		f.handleLeaderboard(s, i, options[0].Options)
	case "history":
		f.handleHistory(s, i, options[0].Options)
	case "info":
		f.handleInfo(s, i)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}
