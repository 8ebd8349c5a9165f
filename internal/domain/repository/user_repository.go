package repository

import "github.com/uniformes/expedicao-api/internal/domain/entity"

// UserRepository define el puerto de lectura de usuarios (nombre para display).
type UserRepository interface {
	GetByID(id int64) (*entity.User, error)
}
