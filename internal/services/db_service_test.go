package services_test

import (
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
	"github.com/stretchr/testify/suite"
)

type DBServiceTestSuite struct {
	suite.Suite
}

func (suite *DBServiceTestSuite) TestNewPostgresDBServiceEmptyDSN() {
	_, err := services.NewPostgresDBService("")
	suite.Error(err)
}

func (suite *DBServiceTestSuite) TestNewPostgresDBServiceUnreachableHost() {
	_, err := services.NewPostgresDBService("host=127.0.0.1 port=1 user=none dbname=none sslmode=disable connect_timeout=1")
	suite.Error(err)
}

func (suite *DBServiceTestSuite) TestNewSqliteDBServiceInMemory() {
	db, err := services.NewSqliteDBService(":memory:")
	suite.Require().NoError(err)
	suite.NotNil(db.GetDB())
	defer db.Close()

	suite.True(db.GetDB().Migrator().HasTable(&models.ContractDeployment{}))
}

func (suite *DBServiceTestSuite) TestNewDBServiceCreatesDirectory() {
	path := filepath.Join(suite.T().TempDir(), "nested", "sugarfunge.db")

	db, err := services.NewDBService("", path)
	suite.Require().NoError(err)
	suite.NoError(db.Close())
	suite.FileExists(path)
}

func TestDBServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DBServiceTestSuite))
}
