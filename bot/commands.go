package bot

import (
	"fmt"

	"smarterdev/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (b *Bot) registerCommands() error {
	minAmount := float64(1)
	minLimit := float64(1)
	maxLeaderboard := float64(common.MaxLeaderboardLimit)
	maxHistory := float64(common.MaxHistoryLimit)

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "bytes",
			Description: "Bytes economy commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "balance",
					Description: "Check your bytes balance",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "daily",
					Description: "Claim your daily bytes reward",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "send",
					Description: "Send bytes to another member",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Who to send bytes to",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "How many bytes to send",
							Required:    true,
							MinValue:    &minAmount,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "reason",
							Description: "Optional reason for the transfer",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "View the guild bytes leaderboard",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "limit",
							Description: "Number of entries to show",
							Required:    false,
							MinValue:    &minLimit,
							MaxValue:    maxLeaderboard,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "View your recent bytes transactions",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "limit",
							Description: "Number of transactions to show",
							Required:    false,
							MinValue:    &minLimit,
							MaxValue:    maxHistory,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "info",
					Description: "View the guild bytes economy settings",
				},
			},
		},
		{
			Name:        "bytes-admin",
			Description: "Bytes economy admin commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset-streak",
					Description: "Reset a member's daily claim streak",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Member whose streak to reset",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stats",
					Description: "View bytes service statistics",
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create command %s: %w", cmd.Name, err)
		}
		log.WithField("command", cmd.Name).Debug("Registered slash command")
	}

	return nil
}
