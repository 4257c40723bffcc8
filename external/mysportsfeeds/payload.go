package mysportsfeeds

import (
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// flexNumber accepts a JSON number or a numeric string. Sportsbook prices
// arrive in either form.
type flexNumber struct {
	value float64
	valid bool
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*n = flexNumber{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var text string
		if err := sonic.UnmarshalString(raw, &text); err != nil {
			return err
		}
		raw = strings.TrimPrefix(strings.TrimSpace(text), "+")
		if raw == "" {
			*n = flexNumber{}
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Unparseable prices are treated as missing.
		*n = flexNumber{}
		return nil
	}
	*n = flexNumber{value: v, valid: true}
	return nil
}

func (n flexNumber) intPtr() *int {
	if !n.valid {
		return nil
	}
	v := int(n.value)
	return &v
}

func (n flexNumber) floatPtr() *float64 {
	if !n.valid {
		return nil
	}
	v := n.value
	return &v
}

type idRef struct {
	ID int64 `json:"id"`
}

type socialMediaAccount struct {
	MediaType string `json:"mediaType"`
	Value     string `json:"value"`
}

type teamRef struct {
	ID                   int64                `json:"id"`
	City                 string               `json:"city"`
	Name                 string               `json:"name"`
	Abbreviation         string               `json:"abbreviation"`
	HomeVenue            *idRef               `json:"homeVenue"`
	TeamColoursHex       []string             `json:"teamColoursHex"`
	SocialMediaAccounts  []socialMediaAccount `json:"socialMediaAccounts"`
	OfficialLogoImageSrc string               `json:"officialLogoImageSrc"`
}

type gamesEnvelope struct {
	Games []gameItem `json:"games"`
}

type gameItem struct {
	Schedule gameSchedule `json:"schedule"`
	Score    *gameScore   `json:"score"`
}

type gameSchedule struct {
	ID                       int64   `json:"id"`
	Week                     int     `json:"week"`
	StartTime                string  `json:"startTime"`
	EndedTime                string  `json:"endedTime"`
	AwayTeam                 *idRef  `json:"awayTeam"`
	HomeTeam                 *idRef  `json:"homeTeam"`
	Venue                    *idRef  `json:"venue"`
	VenueAllegiance          string  `json:"venueAllegiance"`
	ScheduleStatus           string  `json:"scheduleStatus"`
	OriginalStartTime        *string `json:"originalStartTime"`
	DelayedOrPostponedReason *string `json:"delayedOrPostponedReason"`
	PlayedStatus             string  `json:"playedStatus"`
}

type gameScore struct {
	AwayScoreTotal *int `json:"awayScoreTotal"`
	HomeScoreTotal *int `json:"homeScoreTotal"`
}

type gameLinesEnvelope struct {
	GameLines []gameLinesItem `json:"gameLines"`
}

type gameLinesItem struct {
	Game  gameLinesGame    `json:"game"`
	Lines []sourceLineItem `json:"lines"`
}

type gameLinesGame struct {
	ID                   int64  `json:"id"`
	Week                 int    `json:"week"`
	StartTime            string `json:"startTime"`
	AwayTeamAbbreviation string `json:"awayTeamAbbreviation"`
	HomeTeamAbbreviation string `json:"homeTeamAbbreviation"`
}

type sourceLineItem struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	MoneyLines []struct {
		MoneyLine moneyLine `json:"moneyLine"`
	} `json:"moneyLines"`
	PointSpreads []struct {
		PointSpread pointSpread `json:"pointSpread"`
	} `json:"pointSpreads"`
	OverUnders []struct {
		OverUnder overUnder `json:"overUnder"`
	} `json:"overUnders"`
}

type americanPrice struct {
	American flexNumber `json:"american"`
}

type moneyLine struct {
	GameSegment string         `json:"gameSegment"`
	AwayLine    *americanPrice `json:"awayLine"`
	HomeLine    *americanPrice `json:"homeLine"`
}

type pointSpread struct {
	GameSegment string     `json:"gameSegment"`
	AwaySpread  flexNumber `json:"awaySpread"`
	HomeSpread  flexNumber `json:"homeSpread"`
}

type overUnder struct {
	GameSegment string     `json:"gameSegment"`
	Total       flexNumber `json:"total"`
	OverUnder   flexNumber `json:"overUnder"`
}

type standingsEnvelope struct {
	Teams []standingItem `json:"teams"`
}

type standingItem struct {
	Team  teamRef `json:"team"`
	Stats struct {
		Standings standingStats `json:"standings"`
	} `json:"stats"`
	OverallRank    *rankRef `json:"overallRank"`
	ConferenceRank *rankRef `json:"conferenceRank"`
	DivisionRank   *rankRef `json:"divisionRank"`
	PlayoffRank    *rankRef `json:"playoffRank"`
}

type standingStats struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	OTWins        int     `json:"otWins"`
	OTLosses      int     `json:"otLosses"`
	WinPct        float64 `json:"winPct"`
	PointsFor     int     `json:"pointsFor"`
	PointsAgainst int     `json:"pointsAgainst"`
	HomeWins      int     `json:"homeWins"`
	AwayWins      int     `json:"awayWins"`
	Streak        *struct {
		StreakType string `json:"streakType"`
	} `json:"streak"`
}

type rankRef struct {
	Rank           *int    `json:"rank"`
	GamesBack      float64 `json:"gamesBack"`
	ConferenceName string  `json:"conferenceName"`
	DivisionName   string  `json:"divisionName"`
}

type teamStatsEnvelope struct {
	TeamStatsTotals []teamStatsItem `json:"teamStatsTotals"`
}

type teamStatsItem struct {
	Team  teamRef       `json:"team"`
	Stats *teamStatsRaw `json:"stats"`
}

type teamStatsRaw struct {
	GamesPlayed int `json:"gamesPlayed"`
	Standings   struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
	} `json:"standings"`
	Scoring struct {
		PointsFor     int `json:"pointsFor"`
		PointsAgainst int `json:"pointsAgainst"`
		TDs           int `json:"tds"`
	} `json:"scoring"`
	Passing struct {
		PassAttempts    int `json:"passAttempts"`
		PassCompletions int `json:"passCompletions"`
		PassNetYards    int `json:"passNetYards"`
	} `json:"passing"`
	Rushing struct {
		RushAttempts int `json:"rushAttempts"`
		RushYards    int `json:"rushYards"`
	} `json:"rushing"`
	Receiving struct {
		RecYards int `json:"recYards"`
	} `json:"receiving"`
	Defense struct {
		TackleSolo    int `json:"tackleSolo"`
		Interceptions int `json:"interceptions"`
	} `json:"defense"`
	Fumbles struct {
		FumLost int `json:"fumLost"`
	} `json:"fumbles"`
	KickoffReturns struct {
		KrRet int `json:"krRet"`
	} `json:"kickoffReturns"`
	PuntReturns struct {
		PrRet int `json:"prRet"`
	} `json:"puntReturns"`
	FieldGoals struct {
		FgMade int `json:"fgMade"`
		FgAtt  int `json:"fgAtt"`
	} `json:"fieldGoals"`
	ExtraPoints struct {
		XpMade int `json:"xpMade"`
		XpAtt  int `json:"xpAtt"`
	} `json:"extraPoints"`
	Offense struct {
		Plays    int     `json:"plays"`
		Yards    int     `json:"yards"`
		AvgYards float64 `json:"avgYards"`
	} `json:"offense"`
}
