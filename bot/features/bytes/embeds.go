package bytes

import (
	"fmt"
	"strings"
	"time"

	"smarterdev/bot/common"
	"smarterdev/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// BuildBalanceEmbed creates an embed for a user's balance
func BuildBalanceEmbed(balance *entities.BytesBalance, displayName string) *discordgo.MessageEmbed {
	lastDaily := "Never"
	if balance.LastDaily != nil {
		lastDaily = balance.LastDaily.Time().Format("January 2, 2006")
	}

	streak := "None"
	if balance.HasActiveStreak() {
		streak = fmt.Sprintf("%d days", balance.StreakCount)
	}

	return &discordgo.MessageEmbed{
		Title:       "💾 Bytes Balance",
		Description: fmt.Sprintf("**%s** has **%s bytes**", displayName, common.FormatBalance(balance.Balance)),
		Color:       common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "🔥 Streak",
				Value:  streak,
				Inline: true,
			},
			{
				Name:   "📅 Last Daily",
				Value:  lastDaily,
				Inline: true,
			},
			{
				Name:   "📥 Total Received",
				Value:  common.FormatBalance(balance.TotalReceived),
				Inline: true,
			},
			{
				Name:   "📤 Total Sent",
				Value:  common.FormatBalance(balance.TotalSent),
				Inline: true,
			},
		},
	}
}

// BuildDailyClaimEmbed creates an embed for a successful daily claim
func BuildDailyClaimEmbed(result *entities.DailyClaimResult, displayName string) *discordgo.MessageEmbed {
	description := fmt.Sprintf("**%s** claimed **%s bytes**!", displayName, common.FormatBalance(result.Earned))
	if result.Multiplier > 1 {
		description += fmt.Sprintf(" (%dx streak bonus)", result.Multiplier)
	}

	return &discordgo.MessageEmbed{
		Title:       "✨ Daily Bytes Claimed",
		Description: description,
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "💾 New Balance",
				Value:  common.FormatBalance(result.Balance.Balance),
				Inline: true,
			},
			{
				Name:   "🔥 Streak",
				Value:  fmt.Sprintf("%d days", result.Streak),
				Inline: true,
			},
			{
				Name:   "⏰ Next Claim",
				Value:  common.FormatDiscordTimestamp(result.NextClaimAt),
				Inline: true,
			},
		},
	}
}

// BuildTransferEmbed creates an embed for a completed transfer
func BuildTransferEmbed(result *entities.TransferResult, senderName, receiverName string, amount int64, reason string) *discordgo.MessageEmbed {
	description := fmt.Sprintf("**%s** sent **%s bytes** to **%s**", senderName, common.FormatBalance(amount), receiverName)
	if reason != "" {
		description += "\n\n> " + common.TruncateString(reason, 200)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📨 Bytes Sent",
		Description: description,
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Your Balance",
				Value:  common.FormatBalance(result.NewGiverBalance),
				Inline: true,
			},
		},
	}
	if result.Transaction != nil {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: "Transaction " + result.Transaction.ID,
		}
		embed.Timestamp = result.Transaction.CreatedAt.Format(time.RFC3339)
	}
	return embed
}

// BuildLeaderboardEmbed creates an embed for the guild leaderboard
func BuildLeaderboardEmbed(entries []*entities.LeaderboardEntry, guildName string, displayNames map[string]string) *discordgo.MessageEmbed {
	if len(entries) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "🏆 Bytes Leaderboard",
			Description: "No one has any bytes yet. Claim your daily to get on the board!",
			Color:       common.ColorInfo,
		}
	}

	var lines strings.Builder
	for _, entry := range entries {
		name := displayNames[entry.UserID]
		if name == "" {
			name = "User " + entry.UserID
		}
		medal := fmt.Sprintf("**%d.**", entry.Rank)
		switch entry.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		fmt.Fprintf(&lines, "%s %s — **%s bytes** (🔥 %d)\n", medal, name, common.FormatBalance(entry.Balance), entry.StreakCount)
	}

	return &discordgo.MessageEmbed{
		Title:       "🏆 Bytes Leaderboard",
		Description: lines.String(),
		Color:       common.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: guildName,
		},
	}
}

// BuildHistoryEmbed creates an embed for a user's transaction history
func BuildHistoryEmbed(transactions []*entities.BytesTransaction, userID string) *discordgo.MessageEmbed {
	if len(transactions) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "📜 Transaction History",
			Description: "No transactions yet.",
			Color:       common.ColorInfo,
		}
	}

	var lines strings.Builder
	for _, tx := range transactions {
		// Guard against rows from a wider guild query
		if !tx.Involves(userID) {
			continue
		}
		when := common.FormatDiscordTimestamp(tx.CreatedAt)
		switch {
		case tx.IsSystemGrant():
			fmt.Fprintf(&lines, "✨ Earned **%s** — %s\n", common.FormatBalance(tx.Amount), when)
		case tx.GiverID == userID:
			fmt.Fprintf(&lines, "📤 Sent **%s** to %s — %s\n", common.FormatBalance(tx.Amount), common.GetUserMention(tx.ReceiverID), when)
		default:
			fmt.Fprintf(&lines, "📥 Received **%s** from %s — %s\n", common.FormatBalance(tx.Amount), common.GetUserMention(tx.GiverID), when)
		}
	}

	return &discordgo.MessageEmbed{
		Title:       "📜 Transaction History",
		Description: lines.String(),
		Color:       common.ColorInfo,
	}
}

// BuildConfigEmbed creates an embed for the guild's economy settings
func BuildConfigEmbed(config *entities.BytesConfig, guildName string) *discordgo.MessageEmbed {
	maxTransfer := "10,000 (global cap)"
	if config.MaxTransfer > 0 {
		maxTransfer = common.FormatBalance(config.MaxTransfer)
	}

	return &discordgo.MessageEmbed{
		Title:       "⚙️ Bytes Economy Settings",
		Description: fmt.Sprintf("Current settings for **%s**", guildName),
		Color:       common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Starting Balance",
				Value:  common.FormatBalance(config.StartingBalance),
				Inline: true,
			},
			{
				Name:   "Daily Reward",
				Value:  common.FormatBalance(config.DailyAmount),
				Inline: true,
			},
			{
				Name:   "Max Transfer",
				Value:  maxTransfer,
				Inline: true,
			},
		},
	}
}
