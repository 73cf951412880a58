package bytes

import (
	"context"
	"errors"
	"fmt"

	"smarterdev/bot/common"
	"smarterdev/domain/entities"
	"smarterdev/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// discordUser adapts a discordgo user to the transfer operation's user view.
type discordUser struct {
	user *discordgo.User
}

func (u discordUser) ID() string       { return u.user.ID }
func (u discordUser) Username() string { return u.user.Username }

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	balance, err := f.service.GetBalance(ctx, i.GuildID, i.Member.User.ID, true)
	if err != nil {
		f.respondServiceError(s, i, err, "Failed to retrieve balance. Please try again later.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	embed := BuildBalanceEmbed(balance, displayName)
	respondWithEmbed(s, i, embed, true)
}

func (f *Feature) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	result, err := f.service.ClaimDaily(ctx, i.GuildID, i.Member.User.ID, i.Member.User.Username)
	if err != nil {
		var claimed *services.AlreadyClaimedError
		if errors.As(err, &claimed) {
			// Cooldown-specific message so users know when to come back
			balance, balErr := f.service.GetBalance(ctx, i.GuildID, i.Member.User.ID, true)
			next := ""
			if balErr == nil && balance.ClaimedOn(entities.Today()) {
				next = common.FormatDiscordTimestamp(balance.LastDaily.Time().AddDate(0, 0, 1))
			}
			message := "You already claimed your daily bytes today!"
			if next != "" {
				message += " Come back " + next + "."
			}
			common.RespondWithError(s, i, message)
			return
		}
		f.respondServiceError(s, i, err, "Failed to claim daily reward. Please try again later.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	embed := BuildDailyClaimEmbed(result, displayName)
	respondWithEmbed(s, i, embed, false)
}

func (f *Feature) handleSend(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var amount int64
	var recipient *discordgo.User
	var reason string
	for _, opt := range options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			recipient = opt.UserValue(s)
		case "reason":
			reason = opt.StringValue()
		}
	}

	if recipient == nil {
		common.RespondWithError(s, i, "Invalid recipient user.")
		return
	}
	if recipient.Bot {
		common.RespondWithError(s, i, "You cannot send bytes to bots!")
		return
	}

	result, err := f.service.TransferBytes(ctx, i.GuildID, discordUser{i.Member.User}, discordUser{recipient}, amount, reason)
	if err != nil {
		var insufficient *services.InsufficientBalanceError
		if errors.As(err, &insufficient) {
			common.RespondWithError(s, i, fmt.Sprintf(
				"Insufficient balance! You need %s bytes but only have %s.",
				common.FormatBalance(insufficient.Required),
				common.FormatBalance(insufficient.Available),
			))
			return
		}
		f.respondServiceError(s, i, err, "Transfer failed. Please try again later.")
		return
	}

	if !result.Success {
		common.RespondWithError(s, i, result.Reason)
		return
	}

	senderName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	receiverName := common.GetDisplayName(s, i.GuildID, recipient.ID)
	embed := BuildTransferEmbed(result, senderName, receiverName, amount, reason)
	respondWithEmbed(s, i, embed, false)
}

func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	limit := common.DefaultListLimit
	for _, opt := range options {
		if opt.Name == "limit" {
			limit = int(opt.IntValue())
		}
	}
	if limit < 1 || limit > common.MaxLeaderboardLimit {
		limit = common.DefaultListLimit
	}

	// Resolving a display name can cost one Discord API call per entry,
	// which does not fit inside the 3 second interaction deadline
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error deferring leaderboard response: %v", err)
		return
	}

	entries, err := f.service.GetLeaderboard(ctx, i.GuildID, limit, true)
	if err != nil {
		common.FollowUpWithError(s, i, f.serviceErrorMessage(err, "Failed to get leaderboard. Please try again later."))
		return
	}

	displayNames := make(map[string]string, len(entries))
	for _, entry := range entries {
		displayNames[entry.UserID] = common.GetDisplayName(s, i.GuildID, entry.UserID)
	}

	guildName := i.GuildID
	if guild, err := s.Guild(i.GuildID); err == nil {
		guildName = guild.Name
	}

	embed := BuildLeaderboardEmbed(entries, guildName, displayNames)
	followUpWithEmbed(s, i, embed)
}

func (f *Feature) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	limit := common.DefaultListLimit
	for _, opt := range options {
		if opt.Name == "limit" {
			limit = int(opt.IntValue())
		}
	}
	if limit < 1 || limit > common.MaxHistoryLimit {
		limit = common.DefaultListLimit
	}

	transactions, err := f.service.GetTransactionHistory(ctx, i.GuildID, i.Member.User.ID, limit, true)
	if err != nil {
		f.respondServiceError(s, i, err, "Failed to get transaction history. Please try again later.")
		return
	}

	embed := BuildHistoryEmbed(transactions, i.Member.User.ID)
	respondWithEmbed(s, i, embed, true)
}

func (f *Feature) handleInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	config, err := f.service.GetConfig(ctx, i.GuildID, true)
	if err != nil {
		f.respondServiceError(s, i, err, "Failed to get configuration. Please try again later.")
		return
	}

	guildName := i.GuildID
	if guild, err := s.Guild(i.GuildID); err == nil {
		guildName = guild.Name
	}

	embed := BuildConfigEmbed(config, guildName)
	respondWithEmbed(s, i, embed, true)
}

// serviceErrorMessage maps the service error taxonomy to user-facing
// messages. Unexpected errors get the fallback; the full detail is already
// logged inside the service.
func (f *Feature) serviceErrorMessage(err error, fallback string) string {
	var validation *services.ValidationError
	var notFound *services.ResourceNotFoundError
	var apiErr *services.APIError

	switch {
	case errors.As(err, &validation):
		return "Invalid input: " + validation.Message
	case errors.As(err, &notFound):
		return fmt.Sprintf("No %s found yet. Claim your daily bytes to get started!", notFound.ResourceType)
	case errors.As(err, &apiErr):
		return apiErr.Message
	default:
		log.WithError(err).Error("Unexpected error in bytes command")
		return fallback
	}
}

func (f *Feature) respondServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, fallback string) {
	common.RespondWithError(s, i, f.serviceErrorMessage(err, fallback))
}

func followUpWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up embed: %v", err)
	}
}

func respondWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Errorf("Error responding to bytes command: %v", err)
	}
}
