package admin

import (
	"context"
	"errors"
	"fmt"

	"smarterdev/bot/common"
	"smarterdev/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleResetStreak(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var target *discordgo.User
	for _, opt := range options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}
	if target == nil {
		common.RespondWithError(s, i, "Invalid target user.")
		return
	}

	balance, err := f.service.ResetStreak(ctx, i.GuildID, target.ID, i.Member.User.ID)
	if err != nil {
		var notFound *services.ResourceNotFoundError
		var validation *services.ValidationError
		switch {
		case errors.As(err, &notFound):
			common.RespondWithError(s, i, "That user has no bytes balance in this server.")
		case errors.As(err, &validation):
			common.RespondWithError(s, i, "Invalid input: "+validation.Message)
		default:
			log.WithError(err).Error("Unexpected error resetting streak")
			common.RespondWithError(s, i, "Failed to reset streak. Please try again later.")
		}
		return
	}

	message := fmt.Sprintf("🔄 Reset daily claim streak for %s. Streak is now **%d**.", common.GetUserMention(target.ID), balance.StreakCount)
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to reset-streak command: %v", err)
	}
}

func (f *Feature) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	stats := f.service.GetServiceStats()

	cacheState := "disabled"
	if stats.CacheEnabled {
		cacheState = fmt.Sprintf("%.1f%% hit rate (%d hits / %d misses)", stats.CacheHitRate*100, stats.CacheHits, stats.CacheMisses)
	}

	embed := &discordgo.MessageEmbed{
		Title: "📊 Bytes Service Stats",
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Balance Requests", Value: common.FormatBalance(stats.BalanceRequests), Inline: true},
			{Name: "Daily Claims", Value: common.FormatBalance(stats.DailyClaims), Inline: true},
			{Name: "Transfers", Value: common.FormatBalance(stats.Transfers), Inline: true},
			{Name: "Cache", Value: cacheState, Inline: false},
		},
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to stats command: %v", err)
	}
}
