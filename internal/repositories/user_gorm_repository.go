package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"userdir/internal/models"
)

// UserRecord is the users table row backing GORMUserRepository.
type UserRecord struct {
	Email    string `gorm:"primaryKey;type:varchar(255)"`
	Username string `gorm:"type:varchar(100)"`
	Phone    string `gorm:"type:varchar(32)"`
	Age      uint32
}

// TableName keeps the table name stable across dialects.
func (UserRecord) TableName() string {
	return "users"
}

// GORMUserRepository is a GORM implementation of UserRepository. It treats
// the users table as a key-value store keyed by email: upsert on save, key
// lookup, full scan, delete by key. The caller runs AutoMigrate before
// handing over the *gorm.DB.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Save upserts the record under user.Email.
func (r *GORMUserRepository) Save(user *models.User) error {
	record := UserRecord{
		Email:    user.Email,
		Username: user.Username,
		Phone:    user.Phone,
		Age:      user.Age,
	}
	if err := r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}

// FindByEmail retrieves a record by email, or nil when absent.
func (r *GORMUserRepository) FindByEmail(email string) (*models.User, error) {
	var record UserRecord
	if err := r.db.First(&record, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &StorageError{Op: "find", Err: err}
	}
	user := recordToUser(record)
	return &user, nil
}

// FindAll retrieves every record.
func (r *GORMUserRepository) FindAll() ([]models.User, error) {
	var records []UserRecord
	if err := r.db.Find(&records).Error; err != nil {
		return nil, &StorageError{Op: "find_all", Err: err}
	}
	users := make([]models.User, 0, len(records))
	for _, record := range records {
		users = append(users, recordToUser(record))
	}
	return users, nil
}

// Delete removes the record by email and reports whether it existed.
func (r *GORMUserRepository) Delete(email string) (bool, error) {
	result := r.db.Delete(&UserRecord{}, "email = ?", email)
	if result.Error != nil {
		return false, &StorageError{Op: "delete", Err: result.Error}
	}
	return result.RowsAffected > 0, nil
}

func recordToUser(record UserRecord) models.User {
	return models.User{
		Email:    record.Email,
		Username: record.Username,
		Phone:    record.Phone,
		Age:      record.Age,
	}
}
