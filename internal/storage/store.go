// internal/storage/store.go
package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chandra122/facialtimesheet-final/internal/models"
)

var (
	// ErrSessionAlreadyOpen rejects a check-in while the employee still
	// has an open session.
	ErrSessionAlreadyOpen = errors.New("employee already has an open session")

	// ErrNoOpenSession rejects a check-out when the employee has no open
	// session to close.
	ErrNoOpenSession = errors.New("no active check-in found")
)

// Store handles all database operations for employees, timesheets, and
// credentials. Check-in and check-out transitions run inside a
// transaction with the employee's open rows locked, so the single-open-
// session invariant is never evaluated against a stale view.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- employees ---

func (s *Store) CreateEmployee(ctx context.Context, emp *models.Employee) error {
	return s.db.WithContext(ctx).Create(emp).Error
}

func (s *Store) FindEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	var emp models.Employee
	if err := s.db.WithContext(ctx).First(&emp, id).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var emps []models.Employee
	err := s.db.WithContext(ctx).Order("id asc").Find(&emps).Error
	return emps, err
}

// --- users ---

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --- attendance transitions ---

// CheckIn opens a new session for the employee. It fails with
// ErrSessionAlreadyOpen if an open row exists.
func (s *Store) CheckIn(ctx context.Context, employeeID uint, now time.Time, mood string) (*models.Timesheet, error) {
	var row models.Timesheet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open models.Timesheet
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("employee_id = ? AND check_out IS NULL", employeeID).
			First(&open).Error
		if err == nil {
			return ErrSessionAlreadyOpen
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		row = models.Timesheet{
			EmployeeID:  employeeID,
			CheckIn:     now,
			Mood:        &mood,
			EntryStatus: models.StatusCheckedIn,
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CheckOut closes the employee's open session with the latest check-in
// (ties broken by id). It fails with ErrNoOpenSession when none exists.
func (s *Store) CheckOut(ctx context.Context, employeeID uint, now time.Time) (*models.Timesheet, error) {
	var row models.Timesheet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("employee_id = ? AND check_out IS NULL", employeeID).
			Order("check_in DESC").Order("id DESC").
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoOpenSession
		}
		if err != nil {
			return err
		}

		row.CheckOut = &now
		row.EntryStatus = models.StatusCheckedOut
		return tx.Model(&row).Updates(map[string]interface{}{
			"check_out":    now,
			"entry_status": models.StatusCheckedOut,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListTimesheets returns every record, newest check-in first.
func (s *Store) ListTimesheets(ctx context.Context) ([]models.Timesheet, error) {
	var rows []models.Timesheet
	err := s.db.WithContext(ctx).
		Order("check_in DESC").Order("id DESC").
		Find(&rows).Error
	return rows, err
}
