package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockMigrator struct {
	mock.Mock
}

func (m *mockMigrator) Up() error { return m.Called().Error(0) }
func (m *mockMigrator) Down() error { return m.Called().Error(0) }
func (m *mockMigrator) Steps(n int) error { return m.Called(n).Error(0) }
func (m *mockMigrator) GoTo(v uint) error { return m.Called(v).Error(0) }
func (m *mockMigrator) Force(v int) error { return m.Called(v).Error(0) }
func (m *mockMigrator) Drop() error { return m.Called().Error(0) }
func (m *mockMigrator) Version() (uint, bool, error) {
	args := m.Called()
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func TestRun(t *testing.T) {
	log := zap.NewNop()

	t.Run("step passes a negative count", func(t *testing.T) {
		m := new(mockMigrator)
		m.On("Steps", -1).Return(nil)
		require.NoError(t, run(m, "step", []string{"-1"}, log))
		m.AssertExpectations(t)
	})

	t.Run("goto parses the version", func(t *testing.T) {
		m := new(mockMigrator)
		m.On("GoTo", uint(2)).Return(nil)
		require.NoError(t, run(m, "goto", []string{"2"}, log))
		m.AssertExpectations(t)
	})

	t.Run("version with nothing applied", func(t *testing.T) {
		m := new(mockMigrator)
		m.On("Version").Return(uint(0), false, nil)
		assert.NoError(t, run(m, "version", nil, log))
	})

	t.Run("drop needs confirmation", func(t *testing.T) {
		m := new(mockMigrator)
		assert.Error(t, run(m, "drop", nil, log))
		m.AssertNotCalled(t, "Drop")

		m.On("Drop").Return(nil)
		assert.NoError(t, run(m, "drop", []string{"--confirm"}, log))
	})

	t.Run("invalid arguments", func(t *testing.T) {
		m := new(mockMigrator)
		assert.ErrorContains(t, run(m, "step", nil, log), "step count required")
		assert.ErrorContains(t, run(m, "force", []string{"x"}, log), "invalid version")
		assert.ErrorContains(t, run(m, "goto", []string{"-3"}, log), "invalid version")
	})

	t.Run("unknown command", func(t *testing.T) {
		err := run(new(mockMigrator), "sideways", nil, log)
		assert.ErrorIs(t, err, errUnknownCommand)
	})
}

func TestRun_FileCommandsNeedNoDatabase(t *testing.T) {
	err := run(new(mockMigrator), "create", []string{"x"}, zap.NewNop())
	assert.ErrorContains(t, err, "does not use the database")
}

func TestCreateThenList(t *testing.T) {
	dir := t.TempDir()
	log := zap.NewNop()

	require.NoError(t, create(dir, []string{"Add reviews", "Product", "reviews"}, log))
	require.NoError(t, create(dir, []string{"add-ratings"}, log))
	assert.Error(t, create(dir, nil, log))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	assert.NoError(t, list(dir, nil, log))
}
