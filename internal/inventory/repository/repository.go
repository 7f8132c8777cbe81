package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tair/pededrink/internal/inventory/domain"
)

type productRow struct {
	ID          string          `gorm:"primaryKey;size:36"`
	Position    int             `gorm:"not null;index"`
	Name        string          `gorm:"size:100;not null"`
	Price       decimal.Decimal `gorm:"type:numeric;not null"`
	Quantity    int             `gorm:"not null"`
	Category    string          `gorm:"size:32;not null;index"`
	Image       string
	Description string
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (productRow) TableName() string { return "products" }

type saleRow struct {
	ID          string          `gorm:"primaryKey;size:36"`
	Position    int             `gorm:"not null;index"`
	ProductID   string          `gorm:"size:36;not null;index"`
	ProductName string          `gorm:"size:100;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric;not null"`
	Quantity    int             `gorm:"not null"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric;not null"`
	Customer    string          `gorm:"type:text"`
	UserID      string          `gorm:"size:36"`
	Date        time.Time       `gorm:"not null;index"`
}

func (saleRow) TableName() string { return "sales" }

var _ domain.SnapshotStore = (*GormSnapshotStore)(nil)

// GormSnapshotStore stores the snapshot as two tables and rewrites both on
// every save. Position keeps insertion order across reloads.
type GormSnapshotStore struct {
	db *gorm.DB
}

func NewGormSnapshotStore(db *gorm.DB) *GormSnapshotStore {
	return &GormSnapshotStore{db: db}
}

func (r *GormSnapshotStore) AutoMigrate() error {
	return r.db.AutoMigrate(&productRow{}, &saleRow{})
}

func (r *GormSnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	var products []productRow
	if err := r.db.WithContext(ctx).Order("position").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	var sales []saleRow
	if err := r.db.WithContext(ctx).Order("position").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	if len(products) == 0 && len(sales) == 0 {
		return nil, nil
	}

	snapshot := &domain.Snapshot{
		Products: make([]domain.Product, 0, len(products)),
		Sales:    make([]domain.Sale, 0, len(sales)),
	}
	for _, p := range products {
		snapshot.Products = append(snapshot.Products, domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Quantity:    p.Quantity,
			Category:    domain.Category(p.Category),
			Image:       p.Image,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	for _, s := range sales {
		snapshot.Sales = append(snapshot.Sales, domain.Sale{
			ID:          s.ID,
			ProductID:   s.ProductID,
			ProductName: s.ProductName,
			UnitPrice:   s.UnitPrice,
			Quantity:    s.Quantity,
			TotalPrice:  s.TotalPrice,
			Customer:    s.Customer,
			UserID:      s.UserID,
			Date:        s.Date,
		})
	}
	return snapshot, nil
}

func (r *GormSnapshotStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	products := make([]productRow, 0, len(snapshot.Products))
	for i, p := range snapshot.Products {
		products = append(products, productRow{
			ID:          p.ID,
			Position:    i,
			Name:        p.Name,
			Price:       p.Price,
			Quantity:    p.Quantity,
			Category:    string(p.Category),
			Image:       p.Image,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	sales := make([]saleRow, 0, len(snapshot.Sales))
	for i, s := range snapshot.Sales {
		sales = append(sales, saleRow{
			ID:          s.ID,
			Position:    i,
			ProductID:   s.ProductID,
			ProductName: s.ProductName,
			UnitPrice:   s.UnitPrice,
			Quantity:    s.Quantity,
			TotalPrice:  s.TotalPrice,
			Customer:    s.Customer,
			UserID:      s.UserID,
			Date:        s.Date,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&saleRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&productRow{}).Error; err != nil {
			return err
		}
		if len(products) > 0 {
			if err := tx.CreateInBatches(products, 200).Error; err != nil {
				return err
			}
		}
		if len(sales) > 0 {
			if err := tx.CreateInBatches(sales, 200).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormSnapshotStore) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
