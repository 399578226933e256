package discord

import (
	"github.com/KirkDiggler/rankwatch/internal/services/summary"
	"github.com/bwmarrin/discordgo"
)

// StandingsCommand replies with the latest ranked summary
type StandingsCommand struct {
	BaseCommand
	summary   summary.Service
	channelID string
}

// NewStandingsCommand creates the /standings command
func NewStandingsCommand(summaryService summary.Service, channelID string) *StandingsCommand {
	return &StandingsCommand{
		BaseCommand: BaseCommand{
			Name:        "standings",
			Description: "Show the current ranked standings of tracked accounts",
		},
		summary:   summaryService,
		channelID: channelID,
	}
}

// Handle processes the standings command
func (c *StandingsCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, c.response())
}

func (c *StandingsCommand) response() *discordgo.InteractionResponse {
	latest, ok := c.summary.Latest(c.channelID)
	if !ok {
		return messageResponse("No standings have been published yet. Check back after the next poll.")
	}
	return notificationResponse(latest)
}
