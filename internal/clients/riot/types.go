package riot

import "github.com/KirkDiggler/rankwatch/internal/models"

// ResolvePlayerIDInput contains parameters for resolving a Riot ID
type ResolvePlayerIDInput struct {
	Account models.Account
}

// RecentMatchIDsInput contains parameters for listing recent matches
type RecentMatchIDsInput struct {
	PlayerID string
	Count    int
}

// MatchDetailsInput contains parameters for fetching one match
type MatchDetailsInput struct {
	MatchID string

	// PlayerID selects the participant to summarise
	PlayerID string
}

// RankedStandingsInput contains parameters for fetching league entries
type RankedStandingsInput struct {
	PlayerID string
}

// account is the Account-V1 response
type account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// match is the subset of the Match-V5 response we read
type match struct {
	Metadata struct {
		MatchID string `json:"matchId"`
	} `json:"metadata"`
	Info struct {
		GameDuration     int64         `json:"gameDuration"`
		GameEndTimestamp int64         `json:"gameEndTimestamp"`
		QueueID          int           `json:"queueId"`
		Participants     []participant `json:"participants"`
	} `json:"info"`
}

type participant struct {
	PUUID              string `json:"puuid"`
	ChampionName       string `json:"championName"`
	Win                bool   `json:"win"`
	Kills              int    `json:"kills"`
	Deaths             int    `json:"deaths"`
	Assists            int    `json:"assists"`
	TotalMinionsKilled int    `json:"totalMinionsKilled"`
}

// leagueEntry is one League-V4 entry
type leagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}
