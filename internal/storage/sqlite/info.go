package sqlite

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/iudanet/tabata/internal/models"
)

// infoTables таблицы, по которым считается количество строк
var infoTables = []string{"users", "exercises", "workouts", "history", "user_sessions"}

// Info возвращает сведения о базе: путь, размер файла, версию SQLite и количество строк
func (s *Storage) Info(ctx context.Context) (*models.DatabaseInfo, error) {
	info := &models.DatabaseInfo{
		Path:        s.path,
		TableCounts: make(map[string]int, len(infoTables)),
	}

	if s.path != "" && s.path != MemoryPath {
		st, err := os.Stat(s.path)
		switch {
		case err == nil:
			info.Exists = true
			info.SizeBytes = st.Size()
		case !errors.Is(err, fs.ErrNotExist):
			return nil, wrapErr("failed to stat database file", err)
		}
	}

	if err := s.db.QueryRowContext(ctx, `SELECT sqlite_version()`).Scan(&info.SQLiteVersion); err != nil {
		return nil, wrapErr("failed to get sqlite version", err)
	}

	for _, table := range infoTables {
		var n int
		// имена таблиц из фиксированного списка, не из пользовательского ввода
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return nil, wrapErr("failed to count "+table, err)
		}
		info.TableCounts[table] = n
	}

	return info, nil
}
