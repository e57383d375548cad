// Dev schema bootstrap: drops, recreates and seeds the storefront tables
// straight from the bun models. Production schemas go through the SQL
// migrations instead.
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"ticket-store/internal/models"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ticket-store/internal/config"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	sqldb, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer sqldb.Close()

	if err := sqldb.PingContext(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	log.Println("Dropping tables...")
	dropTables(ctx, db)

	log.Println("Creating tables...")
	createTables(ctx, db)

	log.Println("Seeding sample data...")
	seedData(ctx, db)

	log.Println("Done.")
}

func dropTables(ctx context.Context, db *bun.DB) {
	tables := []interface{}{
		(*models.OrderItemAttendee)(nil),
		(*models.Attendee)(nil),
		(*models.OrderItem)(nil),
		(*models.Order)(nil),
		(*models.Customer)(nil),
		(*models.CouponProduct)(nil),
		(*models.Coupon)(nil),
		(*models.Product)(nil),
		(*models.Event)(nil),
	}
	for _, m := range tables {
		_, _ = db.NewDropTable().Model(m).IfExists().Cascade().Exec(ctx)
	}
}

func createTables(ctx context.Context, db *bun.DB) {
	tables := []interface{}{
		(*models.Event)(nil),
		(*models.Product)(nil),
		(*models.Coupon)(nil),
		(*models.CouponProduct)(nil),
		(*models.Customer)(nil),
		(*models.Order)(nil),
		(*models.OrderItem)(nil),
		(*models.Attendee)(nil),
		(*models.OrderItemAttendee)(nil),
	}
	for _, m := range tables {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			log.Fatalf("Failed to create table for %T: %v", m, err)
		}
	}
}

func seedData(ctx context.Context, db *bun.DB) {
	now := time.Now()

	event := models.Event{
		ID:           "event-main",
		Name:         "Conference 2026",
		StartDate:    now.AddDate(0, 3, 0),
		EndDate:      now.AddDate(0, 3, 3),
		RecordStatus: models.RecordPublished,
		CreatedAt:    now,
	}
	_, _ = db.NewInsert().Model(&event).Exec(ctx)

	salePrice := 850000.0
	products := []models.Product{
		{
			ID:           uuid.NewString(),
			EventID:      event.ID,
			ProductCode:  "TCK-GA",
			Name:         "General Admission",
			Description:  "Full access to all conference days",
			Price:        1000000,
			PriceSale:    &salePrice,
			Variant:      "general",
			RecordStatus: models.RecordPublished,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.NewString(),
			EventID:      event.ID,
			ProductCode:  "TCK-VIP",
			Name:         "VIP Pass",
			Description:  "Priority seating and backstage access",
			Price:        2500000,
			Variant:      "vip",
			RecordStatus: models.RecordPublished,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	_, _ = db.NewInsert().Model(&products).Exec(ctx)

	expiry := now.AddDate(0, 2, 0)
	limit := 100
	minPurchase := 500000.0
	coupon := models.Coupon{
		ID:               uuid.NewString(),
		EventID:          event.ID,
		Code:             "SAVE10",
		Type:             models.CouponPercentage,
		Amount:           10,
		ExpiredDate:      &expiry,
		UsageLimit:       &limit,
		MinTotalPurchase: &minPurchase,
		IsActive:         true,
		IsPublic:         true,
		SaleLabel:        "10% OFF",
		SaleShortDesc:    "Save 10% on every ticket",
		RecordStatus:     models.RecordPublished,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	_, _ = db.NewInsert().Model(&coupon).Exec(ctx)
}
