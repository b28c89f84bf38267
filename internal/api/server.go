package api

import (
	"time"

	"github.com/vytor/pandaschool/internal/db"
	"github.com/vytor/pandaschool/internal/services"
)

const (
	maxBodyBytes   = 1 << 20
	requestTimeout = 15 * time.Second
)

type Server struct {
	DB           *db.DB
	AuthService  services.AuthService
	StoreService services.StoreService
	Validator    *Validator
	CORSOrigin   string
}
