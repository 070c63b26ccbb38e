package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-core/models"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_core")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens the MySQL connection, runs migrations, and seeds
// demo data when asked. Loss of this connection is the one condition the
// core treats as fatal; everything above recovers per request.
func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	if strings.EqualFold(envOrDefault("SEED_DEMO", "false"), "true") {
		SeedDemo(DB, envOrDefault("SEED_TENANT_ID", "demo"))
	}
	return nil
}

// Migrate applies the schema, parents before children.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.Customer{},
		&models.Agent{},
		&models.Booking{},
		&models.HousekeepingTask{},
		&models.InventoryItem{},
	)
}

// SeedDemo fills an empty tenant with a starter room-type list and a few
// rooms so a fresh install has something to show.
func SeedDemo(db *gorm.DB, tenantID string) {
	var rtCount int64
	db.Model(&models.RoomType{}).Where("tenant_id = ?", tenantID).Count(&rtCount)
	if rtCount > 0 {
		log.Printf("tenant %s already seeded", tenantID)
		return
	}

	roomTypes := []models.RoomType{
		{TenantID: tenantID, TypeName: "Single", Description: "Single Room", MaxGuests: 1},
		{TenantID: tenantID, TypeName: "Double", Description: "Double Room", MaxGuests: 2},
		{TenantID: tenantID, TypeName: "Deluxe", Description: "Deluxe Room", MaxGuests: 4},
	}
	if err := db.Create(&roomTypes).Error; err != nil {
		log.Printf("warning: failed to seed room types: %v", err)
		return
	}

	rooms := []models.Room{
		{TenantID: tenantID, RoomNumber: "101", RoomTypeID: &roomTypes[0].ID, Type: "Single", Floor: "1", PricePerNight: 100, Status: models.RoomStatusAvailable},
		{TenantID: tenantID, RoomNumber: "102", RoomTypeID: &roomTypes[1].ID, Type: "Double", Floor: "1", PricePerNight: 200, Status: models.RoomStatusAvailable},
		{TenantID: tenantID, RoomNumber: "201", RoomTypeID: &roomTypes[2].ID, Type: "Deluxe", Floor: "2", PricePerNight: 350, Status: models.RoomStatusAvailable},
	}
	if err := db.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed rooms: %v", err)
		return
	}

	log.Printf("tenant %s seeded with %d room types and %d rooms", tenantID, len(roomTypes), len(rooms))
}
