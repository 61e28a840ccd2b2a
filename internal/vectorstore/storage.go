package vectorstore

import "qabot/internal/domain"

// Storage holds question/response entries in insertion order.
type Storage interface {
	Add(question, response string) (domain.Entry, error)
	Entries() []domain.Entry
	Len() int
	Cap() int
}
