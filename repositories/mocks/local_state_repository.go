package mocks

import (
	"PinguinAgent/models"

	"github.com/stretchr/testify/mock"
)

type LocalStateRepository struct {
	mock.Mock
}

func (m *LocalStateRepository) SaveBlockedSet(appPackages []string) error {
	args := m.Called(appPackages)
	return args.Error(0)
}

func (m *LocalStateRepository) LoadBlockedSet() ([]string, error) {
	args := m.Called()
	var packages []string
	if args.Get(0) != nil {
		packages = args.Get(0).([]string)
	}
	return packages, args.Error(1)
}

func (m *LocalStateRepository) SavePass(pass models.SyncPass) error {
	args := m.Called(pass)
	return args.Error(0)
}

func (m *LocalStateRepository) LatestPass() (models.SyncPass, error) {
	args := m.Called()
	var pass models.SyncPass
	if args.Get(0) != nil {
		pass = args.Get(0).(models.SyncPass)
	}
	return pass, args.Error(1)
}
