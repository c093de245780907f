package database

import (
	"errors"
	"log"
	"time"

	"resto-pos/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the MySQL database and syncs the schema.
// The handle is returned to the caller; there is no package-level DB variable,
// everything downstream receives its connection explicitly.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("DB_DSN is not set; configure your database in .env")
	}

	var db *gorm.DB
	var err error

	// Wait for the DB to come up (docker-compose races the server against MySQL)
	for i := 0; i < 5; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("✅ Database connected and schema synced")
	return db, nil
}

// Migrate syncs the schema. Split out so tests can run it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.RecipeItem{},
		&models.Ingredient{},
		&models.KitchenOrder{},
		&models.OrderLine{},
		&models.SaleRecord{},
		&models.Expense{},
		&models.AuditLog{},
	)
}

// SeedAdmin creates the initial admin account if no users exist yet,
// so a fresh install is reachable without opening /register.
func SeedAdmin(db *gorm.DB, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.User{Username: username, PasswordHash: string(hash), Role: "admin"}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded initial admin user %q", username)
	return nil
}
