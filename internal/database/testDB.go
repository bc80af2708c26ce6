package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "straterra-backend/internal/model"
	"straterra-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seed data for tests
var (
	TestAdminUser m.User

	// Plain password shared by all seeded users
	TestSeedPassword = "SeedPass123!"

	// Seeded career postings: one open, one with a passed deadline, one inactive.
	TestCareerOpen     m.Career
	TestCareerExpired  m.Career
	TestCareerInactive m.Career
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts an admin account and sample career postings if empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return loadTestData(db)
	}

	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	TestAdminUser = m.User{
		Username: "admin_user",
		Password: hashedPwd,
		Email:    "admin@example.com",
		Role:     m.RoleAdmin,
	}
	if err := db.Create(&TestAdminUser).Error; err != nil {
		return err
	}

	var careerCount int64
	if err := db.Model(&m.Career{}).Count(&careerCount).Error; err != nil {
		return err
	}
	if careerCount > 0 {
		return nil
	}

	open := time.Now().AddDate(0, 1, 0)
	passed := time.Now().AddDate(0, 0, -7)
	inactive := false

	careers := []m.Career{
		{
			Slug: "site-supervisor",
			EditableCareerInfo: m.EditableCareerInfo{
				Title:            "Site Supervisor",
				Department:       m.DepartmentConstruction,
				Location:         "Kabul",
				Type:             m.TypeFullTime,
				Experience:       "3-5 years",
				Description:      "Supervise construction crews on active sites.",
				Responsibilities: []string{"Daily site inspection", "Crew scheduling"},
				Requirements:     []string{"Civil engineering degree"},
				Deadline:         open,
			},
		},
		{
			Slug: "fleet-coordinator",
			EditableCareerInfo: m.EditableCareerInfo{
				Title:       "Fleet Coordinator",
				Department:  m.DepartmentLogistics,
				Location:    "Kandahar",
				Type:        m.TypeContract,
				Experience:  "2+ years",
				Description: "Coordinate cross-border freight movements.",
				Deadline:    passed,
			},
		},
		{
			Slug: "electrical-estimator",
			EditableCareerInfo: m.EditableCareerInfo{
				Title:       "Electrical Estimator",
				Department:  m.DepartmentElectricity,
				Location:    "Herat",
				Type:        m.TypePartTime,
				Experience:  "5+ years",
				Description: "Prepare cost estimates for grid projects.",
				Deadline:    open,
				IsActive:    &inactive,
			},
		},
	}

	if err := db.Create(&careers).Error; err != nil {
		return err
	}
	TestCareerOpen = careers[0]
	TestCareerExpired = careers[1]
	TestCareerInactive = careers[2]

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	if err := db.First(&TestAdminUser, "role = ?", m.RoleAdmin).Error; err != nil {
		return err
	}

	_ = db.First(&TestCareerOpen, "slug = ?", "site-supervisor").Error
	_ = db.First(&TestCareerExpired, "slug = ?", "fleet-coordinator").Error
	_ = db.First(&TestCareerInactive, "slug = ?", "electrical-estimator").Error

	return nil
}
