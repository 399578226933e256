package discord

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rankwatch/internal/services/summary"
	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	messenger  *Messenger
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config
	logger     *slog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Logger is optional
	Logger *slog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
		logger:     logger,
	}

	messenger, err := NewMessenger(session, bot.SelfID)
	if err != nil {
		return nil, err
	}
	bot.messenger = messenger

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Messenger returns the channel messenger backed by this bot's session
func (b *Bot) Messenger() *Messenger {
	return b.messenger
}

// SelfID returns the bot's user id, falling back to the application id before the session is ready
func (b *Bot) SelfID() string {
	if b.session.State != nil && b.session.State.User != nil {
		return b.session.State.User.ID
	}
	return b.config.ApplicationID
}

// Start opens the Discord connection and registers the standings command
func (b *Bot) Start(summaryService summary.Service, rankedChannelID string) error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if summaryService != nil {
		if err := b.RegisterCommand(NewStandingsCommand(summaryService, rankedChannelID)); err != nil {
			return fmt.Errorf("failed to register standings command: %w", err)
		}
	}

	b.logger.Info("discord bot connected", "user_id", b.SelfID())
	return nil
}

// Stop removes registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", "command", cmdName, "command_id", cmdID, "error", err)
		} else {
			b.logger.Debug("deleted command", "command", cmdName, "command_id", cmdID)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord, on the configured guild or globally
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command", "command", cmd.GetName(), "command_id", createdCmd.ID, "guild_id", b.config.GuildID)

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.SelfID()
}

// handleInteraction dispatches slash commands
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	h, ok := b.commands[name]
	if !ok {
		return
	}
	if err := h.Handle(s, i); err != nil {
		b.logger.Error("failed to handle command", "command", name, "error", err)
	}
}
