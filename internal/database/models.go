package database

// GameResult is one finished game as stored in the results table.
type GameResult struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	PlayerName string `json:"player_name"`
	RuleSet    string `json:"rule_set"`
	Score0     int    `json:"score0"`
	Score1     int    `json:"score1"`
	Score2     int    `json:"score2"`
	Score3     int    `json:"score3"`
	WinnerName string `json:"winner_name"`
}
