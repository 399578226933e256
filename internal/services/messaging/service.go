package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/KirkDiggler/rankwatch/internal/models"
	"github.com/KirkDiggler/rankwatch/internal/ranking"
)

// service implements the Service interface
type service struct {
	notifyStandingChanges bool
	notifyPointsChanges   bool
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	return &service{
		notifyStandingChanges: config.NotifyStandingChanges,
		notifyPointsChanges:   config.NotifyPointsChanges,
	}, nil
}

// ComposeMatch builds the notification for a newly finished match
func (s *service) ComposeMatch(ctx context.Context, input *ComposeMatchInput) (*ComposeMatchOutput, error) {
	if input == nil || input.Match == nil {
		return nil, errors.New("input and match cannot be nil")
	}
	m := input.Match

	severity := models.SeverityNegative
	result := "Defeat"
	if m.Win {
		severity = models.SeverityPositive
		result = "Victory"
	}

	notification := &models.Notification{
		Title:    fmt.Sprintf("New Match for %s", input.Account.RiotID()),
		Severity: severity,
		Fields: []*models.NotificationField{
			{Name: "Game Mode", Value: m.QueueName(), Inline: true},
			{Name: "Result", Value: result, Inline: true},
			{Name: "Champion", Value: m.Champion, Inline: true},
			{Name: "KDA", Value: m.KDA(), Inline: true},
			{Name: "Duration", Value: formatDuration(m.Duration), Inline: true},
			{Name: "Farm (CS)", Value: fmt.Sprintf("%d", m.Farm), Inline: true},
		},
		Footer:    fmt.Sprintf("Match %s", m.MatchID),
		Timestamp: m.EndedAt,
	}

	return &ComposeMatchOutput{Notification: notification}, nil
}

// ComposeStandings builds the ranked leaderboard summary, one field per ranked queue
func (s *service) ComposeStandings(ctx context.Context, input *ComposeStandingsInput) (*ComposeStandingsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	notification := &models.Notification{
		Title:    SummaryTitle,
		Severity: models.SeverityNeutral,
	}

	if len(input.Entries) == 0 {
		notification.Description = "No accounts tracked."
		return &ComposeStandingsOutput{Notification: notification}, nil
	}

	for _, queue := range models.RankedQueues {
		entries := make([]ranking.Entry, 0, len(input.Entries))
		for _, e := range input.Entries {
			if e == nil {
				continue
			}
			entries = append(entries, ranking.Entry{
				Account:  e.Account,
				Standing: e.Standings[queue],
			})
		}
		ranking.SortEntries(entries)

		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Standing == nil {
				lines = append(lines, fmt.Sprintf("%s: Unranked", e.Account.RiotID()))
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: **%s**", e.Account.RiotID(), e.Standing.Label()))
		}

		notification.Fields = append(notification.Fields, &models.NotificationField{
			Name:  queue.DisplayName(),
			Value: truncate(strings.Join(lines, "\n"), MaxFieldLength),
		})
	}

	return &ComposeStandingsOutput{Notification: notification}, nil
}

// ComposeStandingChange builds the notification for a change between two standings
func (s *service) ComposeStandingChange(ctx context.Context, input *ComposeStandingChangeInput) (*ComposeStandingChangeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var verb string
	severity := models.SeverityNeutral
	switch input.Kind {
	case ranking.ChangePromoted:
		verb, severity = "promoted", models.SeverityPositive
	case ranking.ChangeDemoted:
		verb, severity = "demoted", models.SeverityNegative
	case ranking.ChangeBecameRanked:
		verb, severity = "placed", models.SeverityPositive
	case ranking.ChangeBecameUnranked:
		verb, severity = "is no longer ranked", models.SeverityNegative
	case ranking.ChangePointsChanged:
		verb = "gained LP"
		severity = models.SeverityPositive
		if input.Current.LeaguePoints < input.Previous.LeaguePoints {
			verb, severity = "lost LP", models.SeverityNegative
		}
	default:
		return nil, fmt.Errorf("no notification for change kind %q", input.Kind)
	}

	notification := &models.Notification{
		Title:    fmt.Sprintf("%s %s", input.Account.RiotID(), verb),
		Severity: severity,
		Fields: []*models.NotificationField{
			{Name: "Queue", Value: input.Queue.DisplayName()},
			{Name: "From", Value: input.Previous.Label(), Inline: true},
			{Name: "To", Value: input.Current.Label(), Inline: true},
		},
	}

	if input.Previous != nil && input.Current != nil {
		delta := input.Current.LeaguePoints - input.Previous.LeaguePoints
		notification.Fields = append(notification.Fields, &models.NotificationField{
			Name:   "LP Change",
			Value:  fmt.Sprintf("%+d", delta),
			Inline: true,
		})
	}

	return &ComposeStandingChangeOutput{Notification: notification}, nil
}

// ShouldNotifyStandingChange reports whether a change of this kind is surfaced
func (s *service) ShouldNotifyStandingChange(kind ranking.ChangeKind) bool {
	switch kind {
	case ranking.ChangeNone:
		return false
	case ranking.ChangePointsChanged:
		return s.notifyPointsChanges
	default:
		return s.notifyStandingChanges
	}
}

// formatDuration renders a duration as "30m 30s"
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	seconds := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

// truncate shortens s to at most max runes, marking the cut with an ellipsis
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
