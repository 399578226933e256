package discord

import (
	"time"

	"github.com/KirkDiggler/rankwatch/internal/models"
	"github.com/bwmarrin/discordgo"
)

// Embed colors
const (
	colorPositive = 0x2ECC71
	colorNegative = 0xE74C3C
	colorNeutral  = 0x3498DB
)

// renderEmbed converts a notification into a Discord embed
func renderEmbed(n *models.Notification) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       n.Title,
		Description: n.Description,
		Color:       severityColor(n.Severity),
	}

	for _, f := range n.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}

	if n.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: n.Footer}
	}
	if !n.Timestamp.IsZero() {
		embed.Timestamp = n.Timestamp.UTC().Format(time.RFC3339)
	}

	return embed
}

// parseEmbed converts an embed read from history back into a notification
func parseEmbed(embed *discordgo.MessageEmbed) *models.Notification {
	if embed == nil {
		return nil
	}

	n := &models.Notification{
		Title:       embed.Title,
		Description: embed.Description,
		Severity:    colorSeverity(embed.Color),
	}

	for _, f := range embed.Fields {
		if f == nil {
			continue
		}
		n.Fields = append(n.Fields, &models.NotificationField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}

	if embed.Footer != nil {
		n.Footer = embed.Footer.Text
	}
	if embed.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, embed.Timestamp); err == nil {
			n.Timestamp = ts
		}
	}

	return n
}

// toChannelMessage converts a history message; selfID marks our own messages
func toChannelMessage(m *discordgo.Message, selfID string) *models.ChannelMessage {
	cm := &models.ChannelMessage{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		FromSelf:  m.Author != nil && selfID != "" && m.Author.ID == selfID,
	}
	if len(m.Embeds) > 0 {
		cm.Notification = parseEmbed(m.Embeds[0])
	}
	return cm
}

func severityColor(s models.Severity) int {
	switch s {
	case models.SeverityPositive:
		return colorPositive
	case models.SeverityNegative:
		return colorNegative
	default:
		return colorNeutral
	}
}

func colorSeverity(color int) models.Severity {
	switch color {
	case colorPositive:
		return models.SeverityPositive
	case colorNegative:
		return models.SeverityNegative
	default:
		return models.SeverityNeutral
	}
}
