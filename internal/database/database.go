package database

import (
	"database/sql"
	"os"
	"sync"

	_ "github.com/joho/godotenv/autoload"
	_ "github.com/mattn/go-sqlite3"
)

type Service struct {
	db         *sql.DB
	m          *sync.Mutex
	table_name string
}

var (
	tableName  = "tricktable"
	dbInstance *Service
)

func New() Service {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "./tricktable.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		panic(err)
	}

	sqlStmt := `
	create table if not exists tricktable (
		id string not null primary key,
		created_at string,
		player_name string,
		rule_set string,
		score0 integer,
		score1 integer,
		score2 integer,
		score3 integer,
		winner_name string
	);
	`
	_, err = db.Exec(sqlStmt)
	if err != nil {
		panic(err)
	}

	dbInstance = &Service{
		db:         db,
		table_name: tableName,
		m:          &sync.Mutex{},
	}

	return *dbInstance
}

func (s *Service) Close() error {
	return s.db.Close()
}

func (s *Service) TableName() string {
	return s.table_name
}

func (s *Service) GetAll() ([]GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query("SELECT * FROM " + s.table_name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var result GameResult
		if err := rows.Scan(
			&result.ID,
			&result.CreatedAt,
			&result.PlayerName,
			&result.RuleSet,
			&result.Score0,
			&result.Score1,
			&result.Score2,
			&result.Score3,
			&result.WinnerName); err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

func (s *Service) GetByID(id string) (GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	var result GameResult
	err := s.db.QueryRow("SELECT * FROM "+s.table_name+" WHERE id = ?", id).Scan(
		&result.ID,
		&result.CreatedAt,
		&result.PlayerName,
		&result.RuleSet,
		&result.Score0,
		&result.Score1,
		&result.Score2,
		&result.Score3,
		&result.WinnerName)
	if err != nil {
		return GameResult{}, err
	}
	return result, nil
}

func (s *Service) Insert(result GameResult) error {
	s.m.Lock()
	defer s.m.Unlock()
	_, err := s.db.Exec("INSERT INTO "+s.table_name+
		" (id, created_at, player_name, rule_set, score0, score1, score2, score3, winner_name) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		result.ID,
		result.CreatedAt,
		result.PlayerName,
		result.RuleSet,
		result.Score0,
		result.Score1,
		result.Score2,
		result.Score3,
		result.WinnerName)

	if err != nil {
		return err
	}

	return nil
}

func (s *Service) GetByPlayer(player_name string) ([]GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query("SELECT * FROM "+s.table_name+" WHERE player_name = ?", player_name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var result GameResult
		if err := rows.Scan(
			&result.ID,
			&result.CreatedAt,
			&result.PlayerName,
			&result.RuleSet,
			&result.Score0,
			&result.Score1,
			&result.Score2,
			&result.Score3,
			&result.WinnerName); err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		return nil, sql.ErrNoRows // No results found
	}

	return results, nil
}
