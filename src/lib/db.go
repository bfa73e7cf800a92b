package lib

import (
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB initializes the SQLite connection and sets the global DB variable
func ConnectDB() {
	var dbPath string = os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./dispatchlink.db"
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		// TranslateError maps driver errors onto gorm.ErrDuplicatedKey so the
		// connection repository can detect unique-index races.
		TranslateError: true,
	})
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}

	Log.Infow("connected to SQLite", "path", dbPath)
}
