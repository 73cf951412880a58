package bot

import (
	"fmt"

	"smarterdev/bot/features/admin"
	"smarterdev/bot/features/bytes"
	"smarterdev/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

// Bot manages the Discord bot and all feature modules
type Bot struct {
	config  Config
	session *discordgo.Session

	// Feature modules
	bytes *bytes.Feature
	admin *admin.Feature
}

// New creates a new bot instance with all features
func New(config Config, service interfaces.BytesService) (*Bot, error) {
	// Create Discord session
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		config:  config,
		session: dg,
	}

	// Create feature modules
	bot.bytes = bytes.New(service)
	bot.admin = admin.New(service)

	// Register handlers
	dg.AddHandler(bot.handleCommands)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	log.Info("Discord bot connected and commands registered")
	return bot, nil
}

// handleCommands routes application command interactions to features
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.Member == nil || i.Member.User == nil {
		// Economy commands only make sense inside a guild
		return
	}

	switch i.ApplicationCommandData().Name {
	case "bytes":
		b.bytes.HandleCommand(s, i)
	case "bytes-admin":
		b.admin.HandleCommand(s, i)
	}
}

// Close shuts down the Discord session
func (b *Bot) Close() error {
	return b.session.Close()
}
