package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/consultly-app/consultly/internal/models"
	"gorm.io/gorm"
)

const (
	invoiceDigits      = 15
	invoiceMaxAttempts = 10
)

// ErrInvoiceExhausted is returned when no free invoice number was found
// after the maximum number of attempts.
var ErrInvoiceExhausted = errors.New("could not generate a unique invoice number")

// InvoiceService issues invoice numbers that are unique across the income
// and expense entries of all projects.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// Generate returns a random 15-digit invoice number not currently used by
// any income or expense entry. The check-then-insert window is backed by
// the unique index on invoice_number, so a concurrent duplicate fails at
// insert time rather than silently landing.
func (s *InvoiceService) Generate() (string, error) {
	for i := 0; i < invoiceMaxAttempts; i++ {
		number, err := randomInvoiceNumber()
		if err != nil {
			return "", err
		}

		taken, err := s.InUse(number)
		if err != nil {
			return "", err
		}
		if !taken {
			return number, nil
		}
	}
	return "", ErrInvoiceExhausted
}

// InUse reports whether the number already appears on an income or an
// expense entry of any project.
func (s *InvoiceService) InUse(number string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.IncomeEntry{}).
		Where("invoice_number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := s.db.Model(&models.ExpenseEntry{}).
		Where("invoice_number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var invoiceMax = new(big.Int).Exp(big.NewInt(10), big.NewInt(invoiceDigits), nil)

func randomInvoiceNumber() (string, error) {
	n, err := rand.Int(rand.Reader, invoiceMax)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", invoiceDigits, n), nil
}
