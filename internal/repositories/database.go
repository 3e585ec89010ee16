package repository

import (
	"database/sql"
	"fmt"

	"github.com/ovenfresh/bakery-platform/internal/config"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB          *sql.DB
	User        UserRepository
	Category    CategoryRepository
	Subcategory SubcategoryRepository
	Product     ProductRepository
	Cart        CartRepository
	Order       OrderRepository
}

func New(cfg *config.Config) (*Repository, error) {

	db, err := sql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{
		DB:          db,
		User:        NewUserRepo(db),
		Category:    NewCategoryRepo(db),
		Subcategory: NewSubcategoryRepo(db),
		Product:     NewProductRepo(db),
		Cart:        NewCartRepo(db),
		Order:       NewOrderRepo(db),
	}, nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
