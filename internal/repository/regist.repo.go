package repository

import (
	orderRepo "checkout-hub/internal/repository/order"
	quizRepo "checkout-hub/internal/repository/quiz"
)

// IRepository is a container for all repository interfaces
type IRepository struct {
	Order orderRepo.IRepository
	Quiz  quizRepo.IRepository
}
